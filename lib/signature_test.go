package lib

import (
	"errors"
	"testing"
	"time"
)

func TestWebhookSignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.completed"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	header := SignWebhookPayload(payload, secret, now)

	if err := VerifyWebhookSignature(header, payload, secret, 5*time.Minute, now); err != nil {
		t.Fatalf("verification failed on freshly signed payload: %v", err)
	}

	// still valid within the tolerance window
	if err := VerifyWebhookSignature(header, payload, secret, 5*time.Minute, now.Add(4*time.Minute)); err != nil {
		t.Errorf("verification failed inside tolerance: %v", err)
	}
}

func TestWebhookSignatureRejects(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	header := SignWebhookPayload(payload, secret, now)

	tests := []struct {
		name    string
		header  string
		payload []byte
		at      time.Time
	}{
		{"tampered payload", header, []byte(`{"id":"evt_2"}`), now},
		{"wrong secret signature", SignWebhookPayload(payload, "other", now), payload, now},
		{"stale timestamp", header, payload, now.Add(10 * time.Minute)},
		{"future timestamp", header, payload, now.Add(-10 * time.Minute)},
		{"empty header", "", payload, now},
		{"missing signature part", "t=1760000000", payload, now},
		{"missing timestamp part", "v1=deadbeef", payload, now},
		{"garbage timestamp", "t=soon,v1=deadbeef", payload, now},
		{"garbage header", "not-a-signature", payload, now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyWebhookSignature(tt.header, tt.payload, secret, 5*time.Minute, tt.at)
			if !errors.Is(err, ErrPaymentVerificationFailed) {
				t.Errorf("VerifyWebhookSignature() error = %v, want ErrPaymentVerificationFailed", err)
			}
		})
	}
}
