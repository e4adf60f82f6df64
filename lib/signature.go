package lib

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook signatures follow the common "t=<unix>,v1=<hex hmac>" header
// scheme: the HMAC-SHA256 of "<unix>.<payload>" keyed by the shared webhook
// secret. The timestamp is part of the signed message so a captured event
// cannot be replayed outside the tolerance window.

// SignWebhookPayload computes the signature header value for a payload at
// the given instant. Used by tests and by any outbound signing we do.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// VerifyWebhookSignature checks a signature header against the payload.
// It returns ErrPaymentVerificationFailed for any malformed header, digest
// mismatch, or timestamp outside the tolerance window.
func VerifyWebhookSignature(header string, payload []byte, secret string, tolerance time.Duration, now time.Time) error {
	var tsPart, sigPart string
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			tsPart = v
		case "v1":
			sigPart = v
		}
	}
	if tsPart == "" || sigPart == "" {
		return ErrPaymentVerificationFailed
	}

	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return ErrPaymentVerificationFailed
	}

	eventTime := time.Unix(ts, 0)
	age := now.Sub(eventTime)
	if age < -tolerance || age > tolerance {
		return ErrPaymentVerificationFailed
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(sigPart)) {
		return ErrPaymentVerificationFailed
	}
	return nil
}
