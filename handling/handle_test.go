package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"paiges_bagels_server/lib"

	"github.com/MonkyMars/gecho"
)

func TestHandleServiceError(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", lib.ErrNotFound, http.StatusNotFound},
		{"capacity exceeded", lib.ErrCapacityExceeded, http.StatusConflict},
		{"insufficient stock", lib.ErrInsufficientStock, http.StatusConflict},
		{"slot closed", lib.ErrSlotClosed, http.StatusConflict},
		{"slot has orders", lib.ErrSlotHasOrders, http.StatusConflict},
		{"conflict", lib.ErrConflict, http.StatusConflict},
		{"invalid quantity", lib.ErrInvalidQuantity, http.StatusBadRequest},
		{"item unavailable", lib.ErrItemUnavailable, http.StatusBadRequest},
		{"pricing unavailable", lib.ErrPricingUnavailable, http.StatusServiceUnavailable},
		{"invalid credentials", lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", lib.ErrInvalidToken, http.StatusUnauthorized},
		{"signature failure", lib.ErrPaymentVerificationFailed, http.StatusBadRequest},
		{"no payment reference", lib.ErrNoPaymentReference, http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
		{"wrapped sentinel", errors.Join(errors.New("ctx"), lib.ErrNotFound), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleServiceError(tt.err, logger, w)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
