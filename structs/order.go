package structs

import (
	"paiges_bagels_server/structs/tables"

	"github.com/google/uuid"
)

// OrderRequest is the customer-facing order submission. Bagels and AddOns
// map type id -> requested quantity; prices are never accepted from the
// client.
type OrderRequest struct {
	TimeSlotId string `json:"time_slot_id" validate:"required,uuid4"`

	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`

	Bagels map[string]int `json:"bagels" validate:"required,min=1"`
	AddOns map[string]int `json:"add_ons,omitempty"`

	PaymentMethod tables.PaymentMethod `json:"payment_method" validate:"required,oneof=venmo card"`
}

// OrderResponse is returned to the client for display and payment
// initiation.
type OrderResponse struct {
	Order    *tables.Order    `json:"order"`
	TimeSlot *tables.TimeSlot `json:"time_slot"`

	// CheckoutURL is set for card payments only.
	CheckoutURL string `json:"checkout_url,omitempty"`
	// VenmoHandle and the order's payment reference tell Venmo payers where
	// to send money and what to put in the note.
	VenmoHandle string `json:"venmo_handle,omitempty"`
}

// SlotAvailability is a slot plus its derived remaining capacity.
type SlotAvailability struct {
	Slot      *tables.TimeSlot `json:"slot"`
	Remaining int              `json:"remaining"`
}

// OrderListOptions filters the admin order listing. Nil filters are skipped.
type OrderListOptions struct {
	TimeSlotId  *uuid.UUID
	Status      *tables.OrderStatus
	IncludeFake bool
	Limit       int
	Offset      int
}

// RevenueSummary aggregates paid-for demand. Fake orders are excluded from
// every figure.
type RevenueSummary struct {
	OrderCount        int   `json:"order_count"`
	TotalBagels       int   `json:"total_bagels"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
}
