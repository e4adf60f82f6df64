package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrSlotNotFound is returned when a capacity query references a slot that
// does not exist.
var ErrSlotNotFound = errors.New("time slot not found")

// SlotRemaining computes remaining capacity for a slot as one server-side
// aggregate: capacity minus the bagel total of every non-fake order
// referencing the slot. It never fetches order rows into memory, so the
// value is consistent with whatever snapshot (or lock) the caller's idb
// provides.
func SlotRemaining(ctx context.Context, idb bun.IDB, slotID uuid.UUID) (int, error) {
	var remaining int
	err := idb.NewRaw(
		`SELECT ts.capacity - COALESCE((
			SELECT SUM(o.total_bagels)
			FROM orders o
			WHERE o.time_slot_id = ts.id AND o.is_fake = FALSE
		), 0)
		FROM time_slots ts
		WHERE ts.id = ?`, slotID,
	).Scan(ctx, &remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSlotNotFound
		}
		return 0, err
	}
	if remaining < 0 {
		// Capacity edits can strand a slot below its committed orders;
		// report zero rather than a negative remainder.
		remaining = 0
	}
	return remaining, nil
}

// LockSlot takes a row lock on the slot inside the caller's transaction.
// Reserving capacity is check-then-insert; serializing reservations on the
// slot row is what keeps two concurrent orders from both taking the last
// bagels.
func LockSlot(ctx context.Context, tx bun.Tx, slotID uuid.UUID) error {
	var id uuid.UUID
	err := tx.NewRaw(`SELECT id FROM time_slots WHERE id = ? FOR UPDATE`, slotID).Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotNotFound
		}
		return err
	}
	return nil
}
