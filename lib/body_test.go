package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"paiges_bagels_server/structs"
)

func TestExtractAndValidateBody(t *testing.T) {
	payload := `{
		"time_slot_id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
		"name": "Sam Bagelfan",
		"email": "sam@example.com",
		"phone": "+31612345678",
		"bagels": {"6ba7b811-9dad-41d1-80b4-00c04fd430c8": 6},
		"payment_method": "venmo"
	}`
	r := httptest.NewRequest("POST", "/orders", strings.NewReader(payload))

	body, err := ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Name != "Sam Bagelfan" {
		t.Errorf("name = %q", body.Name)
	}
	if len(body.Bagels) != 1 {
		t.Errorf("bagels = %v", body.Bagels)
	}
}

func TestExtractAndValidateBodyRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"name":`},
		{"missing email", `{
			"time_slot_id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
			"name": "Sam", "phone": "+31612345678",
			"bagels": {"x": 1}, "payment_method": "venmo"
		}`},
		{"bad payment method", `{
			"time_slot_id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
			"name": "Sam", "email": "sam@example.com", "phone": "+31612345678",
			"bagels": {"x": 1}, "payment_method": "cash"
		}`},
		{"empty bagels", `{
			"time_slot_id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
			"name": "Sam", "email": "sam@example.com", "phone": "+31612345678",
			"bagels": {}, "payment_method": "venmo"
		}`},
		{"slot id not a uuid", `{
			"time_slot_id": "saturday-morning",
			"name": "Sam", "email": "sam@example.com", "phone": "+31612345678",
			"bagels": {"x": 1}, "payment_method": "venmo"
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/orders", strings.NewReader(tt.payload))
			if _, err := ExtractAndValidateBody[structs.OrderRequest](r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExtractAndValidateMerchCheckout(t *testing.T) {
	payload := `{
		"name": "Sam Bagelfan",
		"email": "sam@example.com",
		"items": {"6ba7b812-9dad-41d1-80b4-00c04fd430c8": 2}
	}`
	r := httptest.NewRequest("POST", "/merch/checkout", strings.NewReader(payload))

	body, err := ExtractAndValidateBody[structs.MerchCheckoutRequest](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Items["6ba7b812-9dad-41d1-80b4-00c04fd430c8"] != 2 {
		t.Errorf("items = %v", body.Items)
	}
}

func TestExtractAndValidateMerchCheckoutRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing name", `{"email": "sam@example.com", "items": {"a": 1}}`},
		{"bad email", `{"name": "Sam", "email": "not-an-email", "items": {"a": 1}}`},
		{"empty items", `{"name": "Sam", "email": "sam@example.com", "items": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/merch/checkout", strings.NewReader(tt.payload))
			if _, err := ExtractAndValidateBody[structs.MerchCheckoutRequest](r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
