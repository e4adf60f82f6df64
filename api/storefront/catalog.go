package storefront

import (
	"net/http"
	"paiges_bagels_server/handling"

	"github.com/MonkyMars/gecho"
)

func (srm *StorefrontRoutesManager) ListBagelTypes(w http.ResponseWriter, r *http.Request) {
	types, err := srm.catalogService.GetActiveBagelTypes(r.Context())
	if err != nil {
		handling.HandleServiceError(err, srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(types),
		gecho.Send(),
	)
}

func (srm *StorefrontRoutesManager) ListAddOnTypes(w http.ResponseWriter, r *http.Request) {
	types, err := srm.catalogService.GetActiveAddOnTypes(r.Context())
	if err != nil {
		handling.HandleServiceError(err, srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(types),
		gecho.Send(),
	)
}
