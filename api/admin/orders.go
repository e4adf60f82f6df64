package admin

import (
	"net/http"
	"paiges_bagels_server/handling"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListOrders returns orders for the admin console, filterable by slot,
// status, and the fake flag.
func (ar *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidListOptions"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
		return
	}

	orders, total, err := ar.orderService.ListOrders(r.Context(), opts)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders": orders,
			"total":  total,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	order, err := ar.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

// ConfirmOrder is used after matching a Venmo payment note to the order's
// reference. Confirming twice is harmless.
func (ar *AdminRoutesManager) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.orderService.ConfirmOrder(r.Context(), orderID); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.confirmed"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) MarkOrderReady(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.orderService.MarkOrderReady(r.Context(), orderID); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.ready"),
		gecho.Send(),
	)
}

// SetOrderFake flips the promo/test flag on an order.
func (ar *AdminRoutesManager) SetOrderFake(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.FakeFlagRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	if err := ar.orderService.SetOrderFake(r.Context(), orderID, body.IsFake); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.fakeUpdated"),
		gecho.Send(),
	)
}

// DeleteOrder hard-deletes an order, freeing its slot capacity. This is the
// cancellation path for bagel orders.
func (ar *AdminRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.deleted"),
		gecho.Send(),
	)
}

// MarkSlotOrdersReady bulk-readies every confirmed order on a slot, for the
// morning the batch comes out of the oven.
func (ar *AdminRoutesManager) MarkSlotOrdersReady(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.slot.invalidSlotId"),
			gecho.Send(),
		)
		return
	}

	ids, err := ar.orderService.MarkSlotOrdersReady(r.Context(), slotID)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.slotReady"),
		gecho.WithData(map[string]any{
			"transitioned": len(ids),
			"order_ids":    ids,
		}),
		gecho.Send(),
	)
}

// MatchPaymentNote looks up the order behind a Venmo payment note, so the
// admin can paste the note text straight from the Venmo feed and confirm the
// matched order.
func (ar *AdminRoutesManager) MatchPaymentNote(w http.ResponseWriter, r *http.Request) {
	note := r.URL.Query().Get("note")
	if note == "" {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.missingPaymentNote"),
			gecho.Send(),
		)
		return
	}

	order, err := ar.orderService.FindByPaymentNote(r.Context(), note)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

// GetRevenueSummary totals non-fake demand, optionally for one slot.
func (ar *AdminRoutesManager) GetRevenueSummary(w http.ResponseWriter, r *http.Request) {
	var slotID *uuid.UUID
	if slotStr := r.URL.Query().Get("slot_id"); slotStr != "" {
		id, err := uuid.Parse(slotStr)
		if err != nil {
			gecho.BadRequest(w,
				gecho.WithMessage("error.slot.invalidSlotId"),
				gecho.Send(),
			)
			return
		}
		slotID = &id
	}

	summary, err := ar.orderService.RevenueSummary(r.Context(), slotID)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(summary),
		gecho.Send(),
	)
}
