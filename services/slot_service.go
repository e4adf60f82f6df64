package services

import (
	"context"
	"paiges_bagels_server/database"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type SlotService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewSlotService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *SlotService {
	return &SlotService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// ListUpcomingSlots returns future slots with their derived remaining
// capacity. Remaining is computed in one grouped query over live orders,
// never read from a stored countdown.
func (ss *SlotService) ListUpcomingSlots(ctx context.Context) ([]structs.SlotAvailability, error) {
	var slots []tables.TimeSlot
	err := database.WithRetry(ctx, func() error {
		slots = nil
		return ss.db.NewSelect().
			Model(&slots).
			Where("date >= ?", time.Now().Truncate(24*time.Hour)).
			Order("date ASC", "time_of_day ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	used, err := ss.bagelsUsedBySlot(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]structs.SlotAvailability, 0, len(slots))
	for i := range slots {
		slot := &slots[i]
		remaining := slot.Capacity - used[slot.Id]
		if remaining < 0 {
			remaining = 0
		}
		result = append(result, structs.SlotAvailability{
			Slot:      slot,
			Remaining: remaining,
		})
	}

	return result, nil
}

// bagelsUsedBySlot sums non-fake order totals grouped by slot.
func (ss *SlotService) bagelsUsedBySlot(ctx context.Context) (map[uuid.UUID]int, error) {
	type slotUsage struct {
		TimeSlotId uuid.UUID `bun:"time_slot_id"`
		Used       int       `bun:"used"`
	}

	var rows []slotUsage
	err := database.WithRetry(ctx, func() error {
		rows = nil
		return ss.db.NewSelect().
			Model((*tables.Order)(nil)).
			Column("time_slot_id").
			ColumnExpr("SUM(total_bagels) AS used").
			Where("is_fake = ?", false).
			Group("time_slot_id").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	used := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		used[row.TimeSlotId] = row.Used
	}

	return used, nil
}

// GetSlot retrieves a single slot by id.
func (ss *SlotService) GetSlot(ctx context.Context, slotID uuid.UUID) (*tables.TimeSlot, error) {
	slot := new(tables.TimeSlot)
	err := database.WithRetry(ctx, func() error {
		return ss.db.NewSelect().
			Model(slot).
			Where("ts.id = ?", slotID).
			Scan(ctx)
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return slot, nil
}

// GetSlotAvailability returns one slot with its remaining capacity.
func (ss *SlotService) GetSlotAvailability(ctx context.Context, slotID uuid.UUID) (*structs.SlotAvailability, error) {
	slot, err := ss.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	remaining, err := database.SlotRemaining(ctx, ss.db.DB, slotID)
	if err != nil {
		return nil, err
	}

	return &structs.SlotAvailability{Slot: slot, Remaining: remaining}, nil
}

// IsOpenForOrders reports whether a slot still accepts new orders at the
// given instant.
func IsOpenForOrders(slot *tables.TimeSlot, now time.Time) bool {
	if slot.CutoffAt != nil && now.After(*slot.CutoffAt) {
		return false
	}
	return true
}

// CreateSlot inserts a new pickup window.
func (ss *SlotService) CreateSlot(ctx context.Context, slot *tables.TimeSlot) (*tables.TimeSlot, error) {
	if slot.Id == uuid.Nil {
		slot.Id = uuid.New()
	}
	if slot.Capacity <= 0 {
		return nil, lib.ErrInvalidQuantity
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	err := database.WithRetry(ctx, func() error {
		_, err := ss.db.NewInsert().Model(slot).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	ss.logger.Info("Time slot created",
		gecho.Field("slot_id", slot.Id),
		gecho.Field("date", slot.Date.Format("2006-01-02")),
		gecho.Field("capacity", slot.Capacity))

	return slot, nil
}

// UpdateSlot updates a slot's window, capacity, cutoff, and hangover flag.
// Capacity may be lowered below the already-ordered total; existing orders
// are never clawed back, the slot just stops admitting new ones.
func (ss *SlotService) UpdateSlot(ctx context.Context, slot *tables.TimeSlot) error {
	if slot.Capacity <= 0 {
		return lib.ErrInvalidQuantity
	}

	err := database.WithRetry(ctx, func() error {
		result, err := ss.db.NewUpdate().
			Model(slot).
			Column("date", "time_of_day", "capacity", "cutoff_at", "is_hangover").
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

	ss.logger.Info("Time slot updated", gecho.Field("slot_id", slot.Id))
	return nil
}

// DeleteSlot removes a slot. Refused while any order (fake ones included)
// still references it; delete or move those orders first.
func (ss *SlotService) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	return ss.db.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		count, err := tx.NewSelect().
			Model((*tables.Order)(nil)).
			Where("time_slot_id = ?", slotID).
			Count(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		if count > 0 {
			return lib.ErrSlotHasOrders
		}

		result, err := tx.NewDelete().
			Model((*tables.TimeSlot)(nil)).
			Where("id = ?", slotID).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return lib.ErrNotFound
		}

		ss.logger.Info("Time slot deleted", gecho.Field("slot_id", slotID))
		return nil
	})
}
