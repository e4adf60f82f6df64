package tables

import (
	"time"

	"github.com/google/uuid"
)

// MerchItem is a shippable good. Stock is nullable: nil means unlimited and
// is never decremented.
type MerchItem struct {
	tableName struct{}  `bun:"table:merch_items,alias:mi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name       string `bun:"name,notnull" json:"name"`
	Size       string `bun:"size" json:"size,omitempty"` // "M", "L", one-size
	PriceCents int64  `bun:"price_cents,notnull" json:"price_cents"`
	Stock      *int   `bun:"stock" json:"stock,omitempty"`
	IsActive   bool   `bun:"is_active,notnull,default:true" json:"is_active"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type MerchOrder struct {
	tableName struct{}  `bun:"table:merch_orders,alias:mo"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name  string `bun:"name,notnull" json:"name"`
	Email string `bun:"email,notnull" json:"email"`

	TotalCents       int64            `bun:"total_cents,notnull" json:"total_cents"`
	Status           MerchOrderStatus `bun:"status,notnull,default:'pending_payment'" json:"status"`
	PaymentSessionId string           `bun:"payment_session_id" json:"payment_session_id,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Lines []*MerchOrderLine `bun:"rel:has-many,join:id=merch_order_id" json:"lines,omitempty"`
}

// MerchOrderLine carries a denormalized snapshot of the purchased item so
// later catalog edits don't retroactively alter historical orders.
type MerchOrderLine struct {
	tableName    struct{}  `bun:"table:merch_order_lines,alias:mol"`
	Id           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	MerchOrderId uuid.UUID `bun:"merch_order_id,notnull,type:uuid" json:"merch_order_id"`
	MerchItemId  uuid.UUID `bun:"merch_item_id,notnull,type:uuid" json:"merch_item_id"`
	Quantity     int       `bun:"quantity,notnull" json:"quantity"`

	ItemName       string `bun:"item_name,notnull" json:"item_name"`
	ItemSize       string `bun:"item_size" json:"item_size,omitempty"`
	UnitPriceCents int64  `bun:"unit_price_cents,notnull" json:"unit_price_cents"`
}

// MerchOrderStatus has a real cancelled state, unlike bagel orders: merch
// orders routinely expire un-paid and must release stock.
type MerchOrderStatus string

const (
	MerchOrderStatusPendingPayment MerchOrderStatus = "pending_payment"
	MerchOrderStatusPaid           MerchOrderStatus = "paid"
	MerchOrderStatusShipped        MerchOrderStatus = "shipped"
	MerchOrderStatusCancelled      MerchOrderStatus = "cancelled"
)
