package webhooks

import (
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type WebhookRoutesManager struct {
	logger         *gecho.Logger
	paymentService *services.PaymentService
}

func NewWebhookRoutesManager(logger *gecho.Logger, paymentService *services.PaymentService) *WebhookRoutesManager {
	return &WebhookRoutesManager{
		logger:         logger,
		paymentService: paymentService,
	}
}

func (wrm *WebhookRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/webhooks/payment", wrm.HandlePaymentWebhook)
}
