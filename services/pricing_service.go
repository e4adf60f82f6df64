package services

import (
	"context"
	"paiges_bagels_server/database"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs/tables"
	"sort"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type PricingService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewPricingService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *PricingService {
	return &PricingService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// PriceForTotal computes the price for a bagel total by greedy bundle
// decomposition: repeatedly consume the largest tier that still fits.
// This matches the "half dozen plus singles" retail mental model and is
// deliberately not cost-minimal across all tier combinations.
//
// It fails closed with ErrPricingUnavailable when some remainder cannot be
// covered by any tier; undercharging is worse than refusing the order.
func PriceForTotal(total int, tiers []tables.PricingTier) (int64, error) {
	if total <= 0 || len(tiers) == 0 {
		return 0, lib.ErrPricingUnavailable
	}

	sorted := make([]tables.PricingTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Quantity > sorted[j].Quantity
	})

	var price int64
	remaining := total
	for remaining > 0 {
		fitted := false
		for _, tier := range sorted {
			if tier.Quantity <= 0 {
				continue
			}
			if tier.Quantity <= remaining {
				price += tier.PriceCents
				remaining -= tier.Quantity
				fitted = true
				break
			}
		}
		if !fitted {
			return 0, lib.ErrPricingUnavailable
		}
	}

	return price, nil
}

// PricingTypeForSlot picks the tier set a slot prices against.
func PricingTypeForSlot(slot *tables.TimeSlot) tables.PricingType {
	if slot.IsHangover {
		return tables.PricingTypeHangover
	}
	return tables.PricingTypeRegular
}

// GetTiers returns the tier set for a pricing type, read through the cache.
func (ps *PricingService) GetTiers(ctx context.Context, pricingType tables.PricingType) ([]tables.PricingTier, error) {
	if cached, err := ps.cacheService.GetPricingTiers(pricingType); err == nil && cached != nil {
		return cached, nil
	}

	var tiers []tables.PricingTier
	err := database.WithRetry(ctx, func() error {
		tiers = nil
		return ps.db.NewSelect().
			Model(&tiers).
			Where("pricing_type = ?", pricingType).
			Order("quantity ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := ps.cacheService.SetPricingTiers(pricingType, tiers); err != nil {
		ps.logger.Warn("Failed to cache pricing tiers", gecho.Field("error", err))
	}

	return tiers, nil
}

// PriceOrderTotal resolves the authoritative price for a bagel total against
// the server-held tier set. Client-supplied prices are never trusted.
func (ps *PricingService) PriceOrderTotal(ctx context.Context, total int, pricingType tables.PricingType) (int64, error) {
	tiers, err := ps.GetTiers(ctx, pricingType)
	if err != nil {
		return 0, err
	}
	return PriceForTotal(total, tiers)
}

// CreateTier inserts a pricing tier and invalidates the cached set.
func (ps *PricingService) CreateTier(ctx context.Context, tier *tables.PricingTier) (*tables.PricingTier, error) {
	if tier.Id == uuid.Nil {
		tier.Id = uuid.New()
	}
	err := database.WithRetry(ctx, func() error {
		_, err := ps.db.NewInsert().Model(tier).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ps.invalidate(tier.Type)
	return tier, nil
}

// UpdateTier updates quantity/price/label on an existing tier.
func (ps *PricingService) UpdateTier(ctx context.Context, tier *tables.PricingTier) error {
	err := database.WithRetry(ctx, func() error {
		result, err := ps.db.NewUpdate().
			Model(tier).
			Column("quantity", "price_cents", "label", "pricing_type").
			Set("updated_at = ?", time.Now()).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	ps.invalidate(tier.Type)
	return nil
}

// DeleteTier removes a tier.
func (ps *PricingService) DeleteTier(ctx context.Context, id uuid.UUID) error {
	err := database.WithRetry(ctx, func() error {
		result, err := ps.db.NewDelete().
			Model((*tables.PricingTier)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return lib.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return lib.MapPgError(err)
	}

	ps.invalidate(tables.PricingTypeRegular)
	ps.invalidate(tables.PricingTypeHangover)
	return nil
}

func (ps *PricingService) invalidate(pricingType tables.PricingType) {
	if err := ps.cacheService.InvalidatePricingTiers(pricingType); err != nil {
		ps.logger.Warn("Failed to invalidate pricing cache",
			gecho.Field("error", err),
			gecho.Field("pricing_type", pricingType))
	}
}
