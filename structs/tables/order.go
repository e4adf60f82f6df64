package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	// Table Name and identifiers
	tableName struct{}  `bun:"table:orders,alias:o"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	// Customer Data
	Name  string `bun:"name,notnull" json:"name"`
	Email string `bun:"email,notnull" json:"email"`
	Phone string `bun:"phone,notnull" json:"phone"`

	// Slot Data
	TimeSlotId uuid.UUID `bun:"time_slot_id,notnull,type:uuid" json:"time_slot_id"`

	// Totals (server-computed, authoritative). TotalBagels always equals the
	// sum of the order's item quantities; both are written in one transaction.
	TotalBagels     int   `bun:"total_bagels,notnull" json:"total_bagels"`
	TotalPriceCents int64 `bun:"total_price_cents,notnull" json:"total_price_cents"`

	// IsFake excludes the order from capacity and revenue accounting
	// (promo/test orders).
	IsFake bool `bun:"is_fake,notnull,default:false" json:"is_fake"`

	// Payment Data
	PaymentMethod PaymentMethod `bun:"payment_method,notnull" json:"payment_method"`
	// PaymentReference is the note token customers put on a Venmo payment so
	// it can be matched back to the order.
	PaymentReference string `bun:"payment_reference,notnull" json:"payment_reference"`
	PaymentSessionId string `bun:"payment_session_id" json:"payment_session_id,omitempty"`

	// Order Data
	Status    OrderStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Items  []*OrderItem  `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
	AddOns []*OrderAddOn `bun:"rel:has-many,join:id=order_id" json:"add_ons,omitempty"`
}

type OrderItem struct {
	tableName   struct{}  `bun:"table:order_items,alias:oi"`
	Id          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderId     uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`
	BagelTypeId uuid.UUID `bun:"bagel_type_id,notnull,type:uuid" json:"bagel_type_id"`
	Quantity    int       `bun:"quantity,notnull" json:"quantity"`

	// Snapshot of the bagel type name at order time
	BagelTypeName string `bun:"bagel_type_name,notnull" json:"bagel_type_name"`
}

type OrderAddOn struct {
	tableName   struct{}  `bun:"table:order_add_ons,alias:oa"`
	Id          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderId     uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`
	AddOnTypeId uuid.UUID `bun:"add_on_type_id,notnull,type:uuid" json:"add_on_type_id"`
	Quantity    int       `bun:"quantity,notnull" json:"quantity"`

	// Snapshot of the add-on name and unit price at order time
	AddOnTypeName  string `bun:"add_on_type_name,notnull" json:"add_on_type_name"`
	UnitPriceCents int64  `bun:"unit_price_cents,notnull" json:"unit_price_cents"`
}

// OrderStatus is the bagel-order lifecycle. There is no cancelled status:
// admin deletion is the cancellation mechanism for bagel orders.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
)

type PaymentMethod string

const (
	PaymentMethodVenmo PaymentMethod = "venmo"
	PaymentMethodCard  PaymentMethod = "card"
)
