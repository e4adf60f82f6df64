package merch

import (
	"net/http"
	"paiges_bagels_server/handling"
	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateCheckout reserves stock and returns the hosted checkout URL.
// Unpaid reservations are released when the provider reports the session
// expired.
func (mrm *MerchRoutesManager) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MerchCheckoutRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.merch.invalidRequestBody"),
			gecho.WithData(map[string]string{"error": err.Error()}),
			gecho.Send(),
		)
		return
	}

	response, err := mrm.merchService.CreateCheckout(r.Context(), body)
	if err != nil {
		handling.HandleServiceError(err, mrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.merch.checkoutCreated"),
		gecho.WithData(response),
		gecho.Send(),
	)
}
