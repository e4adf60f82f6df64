package webhooks

import (
	"errors"
	"io"
	"net/http"
	"paiges_bagels_server/lib"

	"github.com/MonkyMars/gecho"
)

// Provider payloads are small; anything bigger is not a webhook.
const maxWebhookBody = 64 * 1024

// HandlePaymentWebhook receives signed provider events. The provider
// retries on any non-2xx, so only genuinely retryable failures (signature
// mismatch, internal errors) return one; unknown sessions and replays are
// acknowledged.
func (wrm *WebhookRoutesManager) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		wrm.logger.Warn("Failed to read webhook body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.Send())
		return
	}

	sigHeader := r.Header.Get("X-Webhook-Signature")

	err = wrm.paymentService.HandleWebhook(r.Context(), payload, sigHeader)
	if err != nil {
		if errors.Is(err, lib.ErrPaymentVerificationFailed) {
			gecho.BadRequest(w,
				gecho.WithMessage("Signature verification failed"),
				gecho.Send(),
			)
			return
		}

		wrm.logger.Error("Webhook processing failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	gecho.Success(w, gecho.Send())
}
