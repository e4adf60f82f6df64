package orders

import (
	"net/http"
	"paiges_bagels_server/handling"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder places a bagel order. Capacity is checked and reserved inside
// the service transaction; a 409 means the slot filled up first.
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidRequestBody"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
		return
	}

	response, err := orm.orderService.CreateOrderFromRequest(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.created"),
		gecho.WithData(response),
		gecho.Send(),
	)
}
