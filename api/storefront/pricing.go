package storefront

import (
	"net/http"
	"paiges_bagels_server/handling"
	"paiges_bagels_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// GetPricingTiers returns the bundle tiers for "regular" or "hangover"
// pricing. The storefront displays these; the server still reprices every
// order itself.
func (srm *StorefrontRoutesManager) GetPricingTiers(w http.ResponseWriter, r *http.Request) {
	pricingType := tables.PricingType(chi.URLParam(r, "type"))
	if pricingType != tables.PricingTypeRegular && pricingType != tables.PricingTypeHangover {
		gecho.BadRequest(w,
			gecho.WithMessage("Unknown pricing type"),
			gecho.Send(),
		)
		return
	}

	tiers, err := srm.pricingService.GetTiers(r.Context(), pricingType)
	if err != nil {
		handling.HandleServiceError(err, srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(tiers),
		gecho.Send(),
	)
}
