package services

import (
	"testing"
	"time"

	"paiges_bagels_server/database"
	"paiges_bagels_server/structs/tables"

	"github.com/uptrace/bun"
)

// Capacity queries take a bun.IDB. The database wrapper does not satisfy it
// (its RunInTx signature differs from bun's), so callers must hand over the
// embedded bun handle. This pins that at compile time.
var _ = func(db *database.DB) bun.IDB { return db.DB }

func TestIsOpenForOrders(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name   string
		cutoff *time.Time
		want   bool
	}{
		{"no cutoff", nil, true},
		{"cutoff in the future", &after, true},
		{"cutoff passed", &before, false},
		{"exactly at cutoff", &now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &tables.TimeSlot{CutoffAt: tt.cutoff}
			if got := IsOpenForOrders(slot, now); got != tt.want {
				t.Errorf("IsOpenForOrders(cutoff=%v) = %v, want %v", tt.cutoff, got, tt.want)
			}
		})
	}
}
