package admin

import (
	"net/http"

	"paiges_bagels_server/handling"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListMerchItems includes inactive items, unlike the storefront listing.
func (ar *AdminRoutesManager) ListMerchItems(w http.ResponseWriter, r *http.Request) {
	items, err := ar.merchService.ListAllItems(r.Context())
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(items),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateMerchItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MerchItemRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.merch.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	item := &tables.MerchItem{
		Name:       body.Name,
		Size:       body.Size,
		PriceCents: body.PriceCents,
		Stock:      body.Stock,
		IsActive:   body.IsActive,
	}

	created, err := ar.merchService.CreateItem(r.Context(), item)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.merch.itemCreated"),
		gecho.WithData(created),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateMerchItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.merch.invalidItemId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.MerchItemRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.merch.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	item := &tables.MerchItem{
		Id:         id,
		Name:       body.Name,
		Size:       body.Size,
		PriceCents: body.PriceCents,
		Stock:      body.Stock,
		IsActive:   body.IsActive,
	}

	if err := ar.merchService.UpdateItem(r.Context(), item); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.merch.itemUpdated"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) ListMerchOrders(w http.ResponseWriter, r *http.Request) {
	var status *tables.MerchOrderStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := tables.MerchOrderStatus(statusStr)
		switch s {
		case tables.MerchOrderStatusPendingPayment,
			tables.MerchOrderStatusPaid,
			tables.MerchOrderStatusShipped,
			tables.MerchOrderStatusCancelled:
			status = &s
		default:
			gecho.BadRequest(w,
				gecho.WithMessage("error.merch.invalidStatus"),
				gecho.Send(),
			)
			return
		}
	}

	orders, err := ar.merchService.ListOrders(r.Context(), status)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(orders),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) ShipMerchOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.merch.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.merchService.MarkShipped(r.Context(), id); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.merch.shipped"),
		gecho.Send(),
	)
}
