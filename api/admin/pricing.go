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

func (ar *AdminRoutesManager) CreatePricingTier(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PricingTierRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.pricing.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	tier := &tables.PricingTier{
		Quantity:   body.Quantity,
		PriceCents: body.PriceCents,
		Label:      body.Label,
		Type:       tables.PricingType(body.Type),
	}

	created, err := ar.pricingService.CreateTier(r.Context(), tier)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.pricing.created"),
		gecho.WithData(created),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdatePricingTier(w http.ResponseWriter, r *http.Request) {
	tierID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.pricing.invalidTierId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.PricingTierRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.pricing.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	tier := &tables.PricingTier{
		Id:         tierID,
		Quantity:   body.Quantity,
		PriceCents: body.PriceCents,
		Label:      body.Label,
		Type:       tables.PricingType(body.Type),
	}

	if err := ar.pricingService.UpdateTier(r.Context(), tier); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.pricing.updated"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeletePricingTier(w http.ResponseWriter, r *http.Request) {
	tierID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.pricing.invalidTierId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.pricingService.DeleteTier(r.Context(), tierID); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.pricing.deleted"),
		gecho.Send(),
	)
}
