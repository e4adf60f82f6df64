package handling

import (
	"net/http"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"
	"strconv"

	"github.com/google/uuid"
)

// ParseOrderListOptions parses HTTP query parameters into OrderListOptions
// for the admin order listing.
func ParseOrderListOptions(r *http.Request) (*structs.OrderListOptions, error) {
	query := r.URL.Query()

	opts := &structs.OrderListOptions{}

	// Pagination
	page := 1
	if p := query.Get("page"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if val > 0 {
			page = val
		}
	}

	pageSize := 50
	if ps := query.Get("page_size"); ps != "" {
		val, err := strconv.Atoi(ps)
		if err != nil {
			return nil, err
		}
		if val > 0 && val <= 200 {
			pageSize = val
		}
	}

	opts.Limit = pageSize
	opts.Offset = (page - 1) * pageSize

	// Filters
	if slotStr := query.Get("slot_id"); slotStr != "" {
		slotID, err := uuid.Parse(slotStr)
		if err != nil {
			return nil, err
		}
		opts.TimeSlotId = &slotID
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status := tables.OrderStatus(statusStr)
		opts.Status = &status
	}

	if fakeStr := query.Get("include_fake"); fakeStr != "" {
		includeFake, err := strconv.ParseBool(fakeStr)
		if err != nil {
			return nil, err
		}
		opts.IncludeFake = includeFake
	}

	return opts, nil
}
