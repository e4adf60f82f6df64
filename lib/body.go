package lib

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	var body T
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()

	if err := validate.Struct(&body); err != nil {
		return nil, err
	}
	return &body, nil
}
