package services

import (
	"paiges_bagels_server/database"
	"paiges_bagels_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	SlotService    *SlotService
	CatalogService *CatalogService
	PricingService *PricingService
	OrderService   *OrderService
	MerchService   *MerchService
	PaymentService *PaymentService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	authService := NewAuthService(logger, cfg)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	slotService := NewSlotService(logger, cfg, db)
	catalogService := NewCatalogService(logger, db, cacheService)
	pricingService := NewPricingService(logger, db, cacheService)

	checkout := NewCheckoutClient(logger, cfg)
	orderService := NewOrderService(logger, cfg, db, slotService, catalogService, pricingService, emailService, checkout)
	merchService := NewMerchService(logger, cfg, db, emailService, checkout)
	paymentService := NewPaymentService(logger, cfg, cacheService, orderService, merchService)

	return &ServiceManager{
		AuthService:    authService,
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		SlotService:    slotService,
		CatalogService: catalogService,
		PricingService: pricingService,
		OrderService:   orderService,
		MerchService:   merchService,
		PaymentService: paymentService,
	}
}
