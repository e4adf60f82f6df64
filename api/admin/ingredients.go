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

func (ar *AdminRoutesManager) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := ar.catalogService.ListIngredients(r.Context())
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(ingredients),
		gecho.Send(),
	)
}

// ListLowStockIngredients returns ingredients at or below their threshold,
// for the "buy more flour" view.
func (ar *AdminRoutesManager) ListLowStockIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := ar.catalogService.LowStockIngredients(r.Context())
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(ingredients),
		gecho.Send(),
	)
}

// UpsertIngredient creates or overwrites by name, so the console can submit
// the whole inventory form without tracking ids.
func (ar *AdminRoutesManager) UpsertIngredient(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.IngredientRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.ingredient.invalidRequestBody"),
			gecho.Send(),
		)
		return
	}

	ing := &tables.Ingredient{
		Name:       body.Name,
		Quantity:   body.Quantity,
		Unit:       body.Unit,
		LowStockAt: body.LowStockAt,
	}

	saved, err := ar.catalogService.UpsertIngredient(r.Context(), ing)
	if err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.ingredient.saved"),
		gecho.WithData(saved),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("error.ingredient.invalidId"),
			gecho.Send(),
		)
		return
	}

	if err := ar.catalogService.DeleteIngredient(r.Context(), id); err != nil {
		handling.HandleServiceError(err, ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.ingredient.deleted"),
		gecho.Send(),
	)
}
