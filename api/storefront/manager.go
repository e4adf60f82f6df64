package storefront

import (
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// StorefrontRoutesManager serves the public, read-only ordering surface:
// slot availability, the bagel and add-on catalog, and the pricing tiers.
type StorefrontRoutesManager struct {
	logger         *gecho.Logger
	slotService    *services.SlotService
	catalogService *services.CatalogService
	pricingService *services.PricingService
}

func NewStorefrontRoutesManager(
	logger *gecho.Logger,
	slotService *services.SlotService,
	catalogService *services.CatalogService,
	pricingService *services.PricingService,
) *StorefrontRoutesManager {
	return &StorefrontRoutesManager{
		logger:         logger,
		slotService:    slotService,
		catalogService: catalogService,
		pricingService: pricingService,
	}
}

func (srm *StorefrontRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/slots", srm.ListSlots)
	r.Get("/slots/{id}", srm.GetSlot)
	r.Get("/bagel-types", srm.ListBagelTypes)
	r.Get("/add-on-types", srm.ListAddOnTypes)
	r.Get("/pricing/{type}", srm.GetPricingTiers)
}
