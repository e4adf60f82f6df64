package orders

import (
	"net/http"
	"paiges_bagels_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetOrder returns an order by id for the confirmation page. The id is an
// unguessable v4 uuid, which is the whole access control for a storefront
// with no customer accounts.
func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.order.invalidOrderId"),
			gecho.Send(),
		)
		return
	}

	order, err := orm.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		handling.HandleServiceError(err, orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}
