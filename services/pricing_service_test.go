package services

import (
	"errors"
	"testing"

	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs/tables"
)

func regularTiers() []tables.PricingTier {
	return []tables.PricingTier{
		{Quantity: 1, PriceCents: 450},
		{Quantity: 3, PriceCents: 1100},
		{Quantity: 6, PriceCents: 2000, Label: "half dozen"},
	}
}

func TestPriceForTotal(t *testing.T) {
	tests := []struct {
		name  string
		total int
		tiers []tables.PricingTier
		want  int64
	}{
		{"single bagel", 1, regularTiers(), 450},
		{"exact half dozen", 6, regularTiers(), 2000},
		{"dozen", 12, regularTiers(), 4000},
		{"two halves plus single", 13, regularTiers(), 4450},
		{"half dozen plus triple", 9, regularTiers(), 3100},
		{"greedy over cheapest", 7, []tables.PricingTier{
			{Quantity: 1, PriceCents: 400},
			{Quantity: 3, PriceCents: 1000},
			{Quantity: 6, PriceCents: 1800},
		}, 2200},
		{"four from triples and singles", 4, regularTiers(), 1550},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceForTotal(tt.total, tt.tiers)
			if err != nil {
				t.Fatalf("PriceForTotal(%d) returned error: %v", tt.total, err)
			}
			if got != tt.want {
				t.Errorf("PriceForTotal(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestPriceForTotalUnsortedInput(t *testing.T) {
	shuffled := []tables.PricingTier{
		{Quantity: 3, PriceCents: 1100},
		{Quantity: 6, PriceCents: 2000},
		{Quantity: 1, PriceCents: 450},
	}

	got, err := PriceForTotal(13, shuffled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4450 {
		t.Errorf("PriceForTotal(13) = %d, want 4450", got)
	}

	// input slice must not be reordered
	if shuffled[0].Quantity != 3 || shuffled[2].Quantity != 1 {
		t.Error("PriceForTotal mutated the caller's tier slice")
	}
}

func TestPriceForTotalFailsClosed(t *testing.T) {
	tests := []struct {
		name  string
		total int
		tiers []tables.PricingTier
	}{
		{"zero total", 0, regularTiers()},
		{"negative total", -3, regularTiers()},
		{"no tiers", 5, nil},
		{"uncoverable remainder", 4, []tables.PricingTier{
			{Quantity: 3, PriceCents: 1000},
			{Quantity: 6, PriceCents: 1800},
		}},
		{"total below smallest tier", 2, []tables.PricingTier{
			{Quantity: 3, PriceCents: 1000},
		}},
		{"all tiers zero quantity", 5, []tables.PricingTier{
			{Quantity: 0, PriceCents: 100},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceForTotal(tt.total, tt.tiers)
			if !errors.Is(err, lib.ErrPricingUnavailable) {
				t.Errorf("PriceForTotal(%d) error = %v, want ErrPricingUnavailable", tt.total, err)
			}
		})
	}
}

func TestPricingTypeForSlot(t *testing.T) {
	regular := &tables.TimeSlot{IsHangover: false}
	if got := PricingTypeForSlot(regular); got != tables.PricingTypeRegular {
		t.Errorf("PricingTypeForSlot(regular) = %s", got)
	}

	hangover := &tables.TimeSlot{IsHangover: true}
	if got := PricingTypeForSlot(hangover); got != tables.PricingTypeHangover {
		t.Errorf("PricingTypeForSlot(hangover) = %s", got)
	}
}
