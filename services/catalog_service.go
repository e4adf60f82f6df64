package services

import (
	"context"
	"paiges_bagels_server/database"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CatalogService owns the bagel type and add-on type catalog plus the
// admin-only ingredient inventory.
type CatalogService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCatalogService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CatalogService {
	return &CatalogService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetActiveBagelTypes returns the orderable flavors, read through the cache.
func (cs *CatalogService) GetActiveBagelTypes(ctx context.Context) ([]tables.BagelType, error) {
	if cached, err := cs.cacheService.GetBagelTypes(); err == nil && cached != nil {
		return cached, nil
	}

	var types []tables.BagelType
	err := database.WithRetry(ctx, func() error {
		types = nil
		return cs.db.NewSelect().
			Model(&types).
			Where("is_active = ?", true).
			Order("sort_order ASC", "name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := cs.cacheService.SetBagelTypes(types); err != nil {
		cs.logger.Warn("Failed to cache bagel types", gecho.Field("error", err))
	}

	return types, nil
}

// GetActiveAddOnTypes returns the orderable add-ons, read through the cache.
func (cs *CatalogService) GetActiveAddOnTypes(ctx context.Context) ([]tables.AddOnType, error) {
	if cached, err := cs.cacheService.GetAddOnTypes(); err == nil && cached != nil {
		return cached, nil
	}

	var types []tables.AddOnType
	err := database.WithRetry(ctx, func() error {
		types = nil
		return cs.db.NewSelect().
			Model(&types).
			Where("is_active = ?", true).
			Order("sort_order ASC", "name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if err := cs.cacheService.SetAddOnTypes(types); err != nil {
		cs.logger.Warn("Failed to cache add-on types", gecho.Field("error", err))
	}

	return types, nil
}

// GetBagelTypesByIds fetches specific bagel types regardless of cache state.
// Used at order time where staleness is not acceptable.
func (cs *CatalogService) GetBagelTypesByIds(ctx context.Context, ids []uuid.UUID) ([]tables.BagelType, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var types []tables.BagelType
	err := database.WithRetry(ctx, func() error {
		types = nil
		return cs.db.NewSelect().
			Model(&types).
			Where("bt.id IN (?)", bun.In(ids)).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return types, nil
}

// GetAddOnTypesByIds fetches specific add-on types regardless of cache state.
func (cs *CatalogService) GetAddOnTypesByIds(ctx context.Context, ids []uuid.UUID) ([]tables.AddOnType, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var types []tables.AddOnType
	err := database.WithRetry(ctx, func() error {
		types = nil
		return cs.db.NewSelect().
			Model(&types).
			Where("at.id IN (?)", bun.In(ids)).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	return types, nil
}

// CreateBagelType inserts a flavor and invalidates the catalog cache.
func (cs *CatalogService) CreateBagelType(ctx context.Context, bt *tables.BagelType) (*tables.BagelType, error) {
	if bt.Id == uuid.Nil {
		bt.Id = uuid.New()
	}
	err := database.WithRetry(ctx, func() error {
		_, err := cs.db.NewInsert().Model(bt).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	cs.invalidateCatalog()
	return bt, nil
}

// UpdateBagelType updates name, active flag, and sort order.
func (cs *CatalogService) UpdateBagelType(ctx context.Context, bt *tables.BagelType) error {
	err := database.WithRetry(ctx, func() error {
		result, err := cs.db.NewUpdate().
			Model(bt).
			Column("name", "is_active", "sort_order").
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

	cs.invalidateCatalog()
	return nil
}

// CreateAddOnType inserts an add-on and invalidates the catalog cache.
func (cs *CatalogService) CreateAddOnType(ctx context.Context, at *tables.AddOnType) (*tables.AddOnType, error) {
	if at.Id == uuid.Nil {
		at.Id = uuid.New()
	}
	if at.PriceCents < 0 {
		return nil, lib.ErrInvalidQuantity
	}
	err := database.WithRetry(ctx, func() error {
		_, err := cs.db.NewInsert().Model(at).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	cs.invalidateCatalog()
	return at, nil
}

// UpdateAddOnType updates name, price, active flag, and sort order.
// Historical order lines are unaffected, they carry price snapshots.
func (cs *CatalogService) UpdateAddOnType(ctx context.Context, at *tables.AddOnType) error {
	if at.PriceCents < 0 {
		return lib.ErrInvalidQuantity
	}
	err := database.WithRetry(ctx, func() error {
		result, err := cs.db.NewUpdate().
			Model(at).
			Column("name", "price_cents", "is_active", "sort_order").
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

	cs.invalidateCatalog()
	return nil
}

func (cs *CatalogService) invalidateCatalog() {
	if err := cs.cacheService.InvalidateCatalog(); err != nil {
		cs.logger.Warn("Failed to invalidate catalog cache", gecho.Field("error", err))
	}
}

// ============================================================================
// Ingredient Inventory
// ============================================================================

// ListIngredients returns the full baking-supply inventory.
func (cs *CatalogService) ListIngredients(ctx context.Context) ([]tables.Ingredient, error) {
	var ingredients []tables.Ingredient
	err := database.WithRetry(ctx, func() error {
		ingredients = nil
		return cs.db.NewSelect().
			Model(&ingredients).
			Order("name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return ingredients, nil
}

// UpsertIngredient creates or updates an ingredient row by name.
func (cs *CatalogService) UpsertIngredient(ctx context.Context, ing *tables.Ingredient) (*tables.Ingredient, error) {
	if ing.Id == uuid.Nil {
		ing.Id = uuid.New()
	}
	err := database.WithRetry(ctx, func() error {
		_, err := cs.db.NewInsert().
			Model(ing).
			On("CONFLICT (name) DO UPDATE").
			Set("quantity = EXCLUDED.quantity").
			Set("unit = EXCLUDED.unit").
			Set("low_stock_at = EXCLUDED.low_stock_at").
			Set("updated_at = ?", time.Now()).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return ing, nil
}

// DeleteIngredient removes an ingredient row.
func (cs *CatalogService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	err := database.WithRetry(ctx, func() error {
		result, err := cs.db.NewDelete().
			Model((*tables.Ingredient)(nil)).
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
	return nil
}

// LowStockIngredients returns ingredients at or below their reorder line.
func (cs *CatalogService) LowStockIngredients(ctx context.Context) ([]tables.Ingredient, error) {
	var ingredients []tables.Ingredient
	err := database.WithRetry(ctx, func() error {
		ingredients = nil
		return cs.db.NewSelect().
			Model(&ingredients).
			Where("quantity <= low_stock_at").
			Where("low_stock_at > 0").
			Order("name ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return ingredients, nil
}
