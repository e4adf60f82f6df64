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

func (ar *AdminRoutesManager) CreateBagelType(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BagelTypeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	bt := &tables.BagelType{
		Name:      body.Name,
		IsActive:  body.IsActive,
		SortOrder: body.SortOrder,
	}

	created, err := ar.catalogService.CreateBagelType(r.Context(), bt)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.bagelTypeCreated"),
		gecho.WithData(created),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateBagelType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.BagelTypeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	bt := &tables.BagelType{
		Id:        id,
		Name:      body.Name,
		IsActive:  body.IsActive,
		SortOrder: body.SortOrder,
	}

	if err := ar.catalogService.UpdateBagelType(r.Context(), bt); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.bagelTypeUpdated"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) CreateAddOnType(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AddOnTypeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	at := &tables.AddOnType{
		Name:       body.Name,
		PriceCents: body.PriceCents,
		IsActive:   body.IsActive,
		SortOrder:  body.SortOrder,
	}

	created, err := ar.catalogService.CreateAddOnType(r.Context(), at)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.addOnTypeCreated"),
		gecho.WithData(created),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateAddOnType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidId"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddOnTypeRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.catalog.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	at := &tables.AddOnType{
		Id:         id,
		Name:       body.Name,
		PriceCents: body.PriceCents,
		IsActive:   body.IsActive,
		SortOrder:  body.SortOrder,
	}

	if err := ar.catalogService.UpdateAddOnType(r.Context(), at); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.catalog.addOnTypeUpdated"),
		gecho.Send(),
	)
}
