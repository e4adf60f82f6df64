package storefront

import (
	"net/http"
	"paiges_bagels_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListSlots returns upcoming pickup windows with live remaining capacity.
func (srm *StorefrontRoutesManager) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := srm.slotService.ListUpcomingSlots(r.Context())
	if err != nil {
		handling.HandleServiceError(err, srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(slots),
		gecho.Send(),
	)
}

// GetSlot returns one slot with its remaining capacity.
func (srm *StorefrontRoutesManager) GetSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid slot id"),
			gecho.Send(),
		)
		return
	}

	availability, err := srm.slotService.GetSlotAvailability(r.Context(), slotID)
	if err != nil {
		handling.HandleServiceError(err, srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(availability),
		gecho.Send(),
	)
}
