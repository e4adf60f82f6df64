package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"

	"github.com/MonkyMars/gecho"
)

func webhookTestService() *PaymentService {
	return &PaymentService{
		logger: gecho.NewDefaultLogger(),
		cfg: &structs.Config{
			Payment: &structs.PaymentConfig{
				WebhookSecret:      "whsec_test",
				SignatureTolerance: 5 * time.Minute,
			},
		},
	}
}

func TestVerifyAndParse(t *testing.T) {
	ps := webhookTestService()
	payload := []byte(`{
		"id": "evt_123",
		"type": "checkout.completed",
		"data": {"session_id": "cs_abc", "kind": "bagel", "amount_cents": 4450}
	}`)
	header := lib.SignWebhookPayload(payload, "whsec_test", time.Now())

	event, err := ps.VerifyAndParse(payload, header)
	if err != nil {
		t.Fatalf("VerifyAndParse failed: %v", err)
	}

	if event.Id != "evt_123" {
		t.Errorf("event id = %q", event.Id)
	}
	if event.Type != "checkout.completed" {
		t.Errorf("event type = %q", event.Type)
	}
	if event.Data.SessionId != "cs_abc" {
		t.Errorf("session id = %q", event.Data.SessionId)
	}
	if event.Data.Kind != CheckoutKindBagel {
		t.Errorf("kind = %q", event.Data.Kind)
	}
	if event.Data.AmountCents != 4450 {
		t.Errorf("amount = %d", event.Data.AmountCents)
	}
}

func TestVerifyAndParseRejects(t *testing.T) {
	ps := webhookTestService()
	sign := func(payload []byte) string {
		return lib.SignWebhookPayload(payload, "whsec_test", time.Now())
	}

	tests := []struct {
		name    string
		payload []byte
		header  func([]byte) string
	}{
		{"bad signature", []byte(`{"id":"evt_1","type":"checkout.completed"}`), func(p []byte) string {
			return lib.SignWebhookPayload(p, "wrong-secret", time.Now())
		}},
		{"malformed json", []byte(`{"id":`), sign},
		{"missing id", []byte(`{"type":"checkout.completed"}`), sign},
		{"missing type", []byte(`{"id":"evt_1"}`), sign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ps.VerifyAndParse(tt.payload, tt.header(tt.payload))
			if !errors.Is(err, lib.ErrPaymentVerificationFailed) {
				t.Errorf("VerifyAndParse error = %v, want ErrPaymentVerificationFailed", err)
			}
		})
	}
}

// An expired card session must not touch the bagel order: the customer may
// still pay by Venmo, and stale pending orders are the admin's to resolve.
// The service under test has no order service wired, so any attempt to
// mutate order state would panic here.
func TestHandleExpiredLeavesBagelOrderAlone(t *testing.T) {
	ps := webhookTestService()

	event := &WebhookEvent{Id: "evt_exp_1", Type: webhookEventExpired}
	event.Data.SessionId = "cs_abandoned"
	event.Data.Kind = CheckoutKindBagel

	if err := ps.handleExpired(context.Background(), event); err != nil {
		t.Fatalf("handleExpired returned %v, want nil", err)
	}
}
