package merch

import (
	"paiges_bagels_server/api/middleware"
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type MerchRoutesManager struct {
	logger       *gecho.Logger
	merchService *services.MerchService
	mw           *middleware.Middleware
}

func NewMerchRoutesManager(logger *gecho.Logger, merchService *services.MerchService, mw *middleware.Middleware) *MerchRoutesManager {
	return &MerchRoutesManager{
		logger:       logger,
		merchService: merchService,
		mw:           mw,
	}
}

func (mrm *MerchRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/merch", func(r chi.Router) {
		r.Get("/items", mrm.ListItems)
		r.With(mrm.mw.OrderRateLimit()).Post("/checkout", mrm.CreateCheckout)
	})
}
