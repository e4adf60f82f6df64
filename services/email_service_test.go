package services

import (
	"strings"
	"testing"
	"time"

	"paiges_bagels_server/lib"
	"paiges_bagels_server/structs"
	"paiges_bagels_server/structs/tables"

	"github.com/google/uuid"
)

func emailTestService() *EmailService {
	return &EmailService{
		cfg: &structs.Config{
			Email: &structs.EmailConfig{
				SupportEmail: "paige@example.com",
				PickupAddr:   "214 Maple Ave",
			},
			Payment: &structs.PaymentConfig{
				VenmoHandle: "@paiges-bagels",
			},
		},
	}
}

func emailTestOrder(method tables.PaymentMethod) (*tables.Order, *tables.TimeSlot) {
	order := &tables.Order{
		Id:              uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000"),
		Name:            "Sam Bagelfan",
		Email:           "sam@example.com",
		TotalBagels:     6,
		TotalPriceCents: 2000,
		PaymentMethod:   method,
		Items: []*tables.OrderItem{
			{Quantity: 6, BagelTypeName: "Everything"},
		},
	}
	slot := &tables.TimeSlot{
		Date:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		TimeOfDay: "08:30",
	}
	return order, slot
}

func TestOrderReceivedEmailCard(t *testing.T) {
	es := emailTestService()
	order, slot := emailTestOrder(tables.PaymentMethodCard)

	_, body := es.buildOrderReceivedEmail(order, slot)

	if strings.Contains(body, "payment has been received") {
		t.Error("received email must not claim the card payment already happened")
	}
	if !strings.Contains(body, "Finish checking out") {
		t.Error("received email for card orders should point at the checkout page")
	}
	if strings.Contains(body, "@paiges-bagels") {
		t.Error("card orders must not get Venmo instructions")
	}
}

func TestOrderReceivedEmailVenmo(t *testing.T) {
	es := emailTestService()
	order, slot := emailTestOrder(tables.PaymentMethodVenmo)

	_, body := es.buildOrderReceivedEmail(order, slot)

	if !strings.Contains(body, "@paiges-bagels") {
		t.Error("venmo orders need the handle to pay to")
	}
	if !strings.Contains(body, lib.GeneratePaymentReference(order.Id)) {
		t.Error("venmo orders need the payment reference for note matching")
	}
	if !strings.Contains(body, "$20.00") {
		t.Error("payment instructions should carry the order total")
	}
}

func TestOrderConfirmationEmailHasNoPaymentInstructions(t *testing.T) {
	es := emailTestService()
	order, slot := emailTestOrder(tables.PaymentMethodVenmo)

	subject, body := es.buildOrderConfirmationEmail(order, slot)

	if !strings.Contains(subject, "confirmed") {
		t.Errorf("subject = %q", subject)
	}
	if strings.Contains(body, "@paiges-bagels") {
		t.Error("confirmation must not repeat the Venmo instruction block")
	}
	if strings.Contains(body, lib.GeneratePaymentReference(order.Id)) {
		t.Error("confirmation must not repeat the payment reference")
	}
	if !strings.Contains(body, "received your payment") {
		t.Error("confirmation should acknowledge the payment")
	}
}
