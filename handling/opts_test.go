package handling

import (
	"net/http/httptest"
	"testing"

	"paiges_bagels_server/structs/tables"

	"github.com/google/uuid"
)

func TestParseOrderListOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/orders", nil)

	opts, err := ParseOrderListOptions(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Limit != 50 || opts.Offset != 0 {
		t.Errorf("defaults = limit %d offset %d, want 50/0", opts.Limit, opts.Offset)
	}
	if opts.TimeSlotId != nil || opts.Status != nil || opts.IncludeFake {
		t.Error("filters should be unset by default")
	}
}

func TestParseOrderListOptionsFull(t *testing.T) {
	slotID := uuid.New()
	r := httptest.NewRequest("GET",
		"/admin/orders?page=3&page_size=20&slot_id="+slotID.String()+"&status=confirmed&include_fake=true", nil)

	opts, err := ParseOrderListOptions(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Limit != 20 {
		t.Errorf("limit = %d, want 20", opts.Limit)
	}
	if opts.Offset != 40 {
		t.Errorf("offset = %d, want 40", opts.Offset)
	}
	if opts.TimeSlotId == nil || *opts.TimeSlotId != slotID {
		t.Errorf("slot filter = %v", opts.TimeSlotId)
	}
	if opts.Status == nil || *opts.Status != tables.OrderStatusConfirmed {
		t.Errorf("status filter = %v", opts.Status)
	}
	if !opts.IncludeFake {
		t.Error("include_fake not parsed")
	}
}

func TestParseOrderListOptionsClamps(t *testing.T) {
	// oversized page_size falls back to the default
	r := httptest.NewRequest("GET", "/admin/orders?page_size=5000", nil)
	opts, err := ParseOrderListOptions(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Limit != 50 {
		t.Errorf("limit = %d, want default 50", opts.Limit)
	}

	// non-positive page falls back to the first page
	r = httptest.NewRequest("GET", "/admin/orders?page=0", nil)
	opts, err = ParseOrderListOptions(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Offset != 0 {
		t.Errorf("offset = %d, want 0", opts.Offset)
	}
}

func TestParseOrderListOptionsRejectsGarbage(t *testing.T) {
	bad := []string{
		"/admin/orders?page=abc",
		"/admin/orders?page_size=many",
		"/admin/orders?slot_id=not-a-uuid",
		"/admin/orders?include_fake=maybe",
	}
	for _, url := range bad {
		r := httptest.NewRequest("GET", url, nil)
		if _, err := ParseOrderListOptions(r); err == nil {
			t.Errorf("ParseOrderListOptions(%q) should error", url)
		}
	}
}
