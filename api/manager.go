package api

import (
	"paiges_bagels_server/api/admin"
	"paiges_bagels_server/api/auth"
	"paiges_bagels_server/api/health"
	"paiges_bagels_server/api/merch"
	"paiges_bagels_server/api/middleware"
	"paiges_bagels_server/api/orders"
	"paiges_bagels_server/api/storefront"
	"paiges_bagels_server/api/webhooks"
	"paiges_bagels_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	storefrontRoutes *storefront.StorefrontRoutesManager
	healthRoutes     *health.HealthRoutesManager
	authRoutes       *auth.AuthRoutesManager
	adminRoutes      *admin.AdminRoutesManager
	orderRoutes      *orders.OrderRoutesManager
	merchRoutes      *merch.MerchRoutesManager
	webhookRoutes    *webhooks.WebhookRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		storefrontRoutes: storefront.NewStorefrontRoutesManager(logger, sm.SlotService, sm.CatalogService, sm.PricingService),
		healthRoutes:     health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:       auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		adminRoutes:      admin.NewAdminRoutesManager(logger, sm.OrderService, sm.SlotService, sm.PricingService, sm.CatalogService, sm.MerchService, mw),
		orderRoutes:      orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		merchRoutes:      merch.NewMerchRoutesManager(logger, sm.MerchService, mw),
		webhookRoutes:    webhooks.NewWebhookRoutesManager(logger, sm.PaymentService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.storefrontRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.merchRoutes.RegisterRoutes(r)
	rm.webhookRoutes.RegisterRoutes(r)
}
