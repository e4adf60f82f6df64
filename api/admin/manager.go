package admin

import (
	"paiges_bagels_server/api/middleware"
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger         *gecho.Logger
	orderService   *services.OrderService
	slotService    *services.SlotService
	pricingService *services.PricingService
	catalogService *services.CatalogService
	merchService   *services.MerchService
	mw             *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	slotService *services.SlotService,
	pricingService *services.PricingService,
	catalogService *services.CatalogService,
	merchService *services.MerchService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:         logger,
		orderService:   orderService,
		slotService:    slotService,
		pricingService: pricingService,
		catalogService: catalogService,
		merchService:   merchService,
		mw:             mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)

		// Order management
		r.Get("/orders", ar.ListOrders)
		r.Get("/orders/match-payment", ar.MatchPaymentNote)
		r.Get("/orders/{id}", ar.GetOrderDetails)
		r.Post("/orders/{id}/confirm", ar.ConfirmOrder)
		r.Post("/orders/{id}/ready", ar.MarkOrderReady)
		r.Put("/orders/{id}/fake", ar.SetOrderFake)
		r.Delete("/orders/{id}", ar.DeleteOrder)

		// Slot management
		r.Post("/slots", ar.CreateSlot)
		r.Put("/slots/{id}", ar.UpdateSlot)
		r.Delete("/slots/{id}", ar.DeleteSlot)
		r.Post("/slots/{id}/ready-all", ar.MarkSlotOrdersReady)

		// Pricing tiers
		r.Post("/pricing", ar.CreatePricingTier)
		r.Put("/pricing/{id}", ar.UpdatePricingTier)
		r.Delete("/pricing/{id}", ar.DeletePricingTier)

		// Catalog
		r.Post("/bagel-types", ar.CreateBagelType)
		r.Put("/bagel-types/{id}", ar.UpdateBagelType)
		r.Post("/add-on-types", ar.CreateAddOnType)
		r.Put("/add-on-types/{id}", ar.UpdateAddOnType)

		// Ingredient inventory
		r.Get("/ingredients", ar.ListIngredients)
		r.Get("/ingredients/low-stock", ar.ListLowStockIngredients)
		r.Put("/ingredients", ar.UpsertIngredient)
		r.Delete("/ingredients/{id}", ar.DeleteIngredient)

		// Merch
		r.Get("/merch/items", ar.ListMerchItems)
		r.Post("/merch/items", ar.CreateMerchItem)
		r.Put("/merch/items/{id}", ar.UpdateMerchItem)
		r.Get("/merch/orders", ar.ListMerchOrders)
		r.Post("/merch/orders/{id}/ship", ar.ShipMerchOrder)

		// Reporting
		r.Get("/revenue", ar.GetRevenueSummary)
	})
}
