package admin

import (
	"net/http"
	"time"

	"paiges_bagels_server/handling"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func slotFromRequest(body *structs.SlotRequest) (*tables.TimeSlot, error) {
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return nil, err
	}

	slot := &tables.TimeSlot{
		Date:       date,
		TimeOfDay:  body.TimeOfDay,
		Capacity:   body.Capacity,
		IsHangover: body.IsHangover,
	}

	if body.CutoffAt != nil {
		cutoff, err := time.Parse(time.RFC3339, *body.CutoffAt)
		if err != nil {
			return nil, err
		}
		slot.CutoffAt = &cutoff
	}

	return slot, nil
}

func (ar *AdminRoutesManager) CreateSlot(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SlotRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	slot, err := slotFromRequest(body)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidDate"),
			gecho.Send(),
		)
		return
	}

	created, err := ar.slotService.CreateSlot(r.Context(), slot)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.slot.created"),
		gecho.WithData(created),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidSlotId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SlotRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	slot, err := slotFromRequest(body)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidDate"),
			gecho.Send(),
		)
		return
	}
	slot.Id = slotID

	if err := ar.slotService.UpdateSlot(r.Context(), slot); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.slot.updated"),
		gecho.Send(),
	)
}

// DeleteSlot refuses to remove a slot that still has orders pointing at it.
func (ar *AdminRoutesManager) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidSlotId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.slotService.DeleteSlot(r.Context(), slotID); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.slot.deleted"),
		gecho.Send(),
	)
}
