package handling

import (
	"errors"
	"net/http"
	"paiges_bagels_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleServiceError maps service-layer sentinel errors onto HTTP responses.
// Anything unrecognized is logged and becomes a bare 500; internals never
// leak to the client.
func HandleServiceError(err error, logger *gecho.Logger, w http.ResponseWriter) {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.Send())
	case errors.Is(err, lib.ErrCapacityExceeded):
		gecho.Conflict(w, gecho.WithMessage("Not enough bagels left in this time slot"), gecho.Send())
	case errors.Is(err, lib.ErrInsufficientStock):
		gecho.Conflict(w, gecho.WithMessage("Not enough stock for one of the requested items"), gecho.Send())
	case errors.Is(err, lib.ErrSlotClosed):
		gecho.Conflict(w, gecho.WithMessage("Ordering for this time slot has closed"), gecho.Send())
	case errors.Is(err, lib.ErrSlotHasOrders):
		gecho.Conflict(w, gecho.WithMessage("Time slot still has orders and cannot be deleted"), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.Send())
	case errors.Is(err, lib.ErrInvalidQuantity):
		gecho.BadRequest(w, gecho.WithMessage("Invalid quantity"), gecho.Send())
	case errors.Is(err, lib.ErrItemUnavailable):
		gecho.BadRequest(w, gecho.WithMessage("One of the requested items is not available"), gecho.Send())
	case errors.Is(err, lib.ErrPricingUnavailable):
		gecho.ServiceUnavailable(w, gecho.WithMessage("Pricing is temporarily unavailable, no order was placed"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials), errors.Is(err, lib.ErrInvalidToken):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
	case errors.Is(err, lib.ErrPaymentVerificationFailed):
		gecho.BadRequest(w, gecho.WithMessage("Payment verification failed"), gecho.Send())
	case errors.Is(err, lib.ErrNoPaymentReference):
		gecho.BadRequest(w, gecho.WithMessage("No payment reference found in the note"), gecho.Send())
	default:
		logger.Error("Unhandled service error", gecho.Field("error", err), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.Send())
	}
}
