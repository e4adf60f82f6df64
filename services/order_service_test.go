package services

import (
	"errors"
	"testing"

	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
)

func TestIsValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to tables.OrderStatus
		want     bool
	}{
		{tables.OrderStatusPending, tables.OrderStatusConfirmed, true},
		{tables.OrderStatusConfirmed, tables.OrderStatusReady, true},

		// no skipping
		{tables.OrderStatusPending, tables.OrderStatusReady, false},

		// no moving backwards
		{tables.OrderStatusConfirmed, tables.OrderStatusPending, false},
		{tables.OrderStatusReady, tables.OrderStatusConfirmed, false},
		{tables.OrderStatusReady, tables.OrderStatusPending, false},

		// ready is terminal
		{tables.OrderStatusReady, tables.OrderStatusReady, false},

		// self-transitions are not transitions
		{tables.OrderStatusPending, tables.OrderStatusPending, false},
		{tables.OrderStatusConfirmed, tables.OrderStatusConfirmed, false},

		// unknown statuses never transition
		{"", tables.OrderStatusConfirmed, false},
		{tables.OrderStatusPending, "", false},
		{"cancelled", tables.OrderStatusConfirmed, false},
	}
	for _, tt := range tests {
		got := isValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("isValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTallyBagels(t *testing.T) {
	cfg := &structs.OrderConfig{MinBagelsPerOrder: 1, MaxBagelsPerOrder: 13}
	flavorA := "6ba7b810-9dad-41d1-80b4-00c04fd430c8"
	flavorB := "6ba7b811-9dad-41d1-80b4-00c04fd430c8"

	tests := []struct {
		name      string
		bagels    map[string]int
		wantTotal int
		wantErr   error
	}{
		{"minimum order", map[string]int{flavorA: 1}, 1, nil},
		{"maximum order", map[string]int{flavorA: 7, flavorB: 6}, 13, nil},
		{"empty order", map[string]int{}, 0, lib.ErrInvalidQuantity},
		{"one over maximum", map[string]int{flavorA: 14}, 0, lib.ErrInvalidQuantity},
		{"zero quantity flavor", map[string]int{flavorA: 0, flavorB: 3}, 0, lib.ErrInvalidQuantity},
		{"negative quantity", map[string]int{flavorA: -2}, 0, lib.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := tallyBagels(tt.bagels, cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("tallyBagels error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("tallyBagels failed: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
		})
	}
}

func TestTallyBagelsRejectsMalformedId(t *testing.T) {
	cfg := &structs.OrderConfig{MinBagelsPerOrder: 1, MaxBagelsPerOrder: 13}
	if _, err := tallyBagels(map[string]int{"plain": 3}, cfg); err == nil {
		t.Error("expected error for non-uuid flavor id")
	}
}
