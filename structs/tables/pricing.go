package tables

import (
	"time"

	"github.com/google/uuid"
)

// PricingType distinguishes the advance-order tier set from the same-day
// hangover tier set.
type PricingType string

const (
	PricingTypeRegular  PricingType = "regular"
	PricingTypeHangover PricingType = "hangover"
)

// PricingTier is one (quantity, price) bundle used for greedy decomposition
// of a requested total. Read-only from the ordering workflow; admin-mutable.
type PricingTier struct {
	tableName struct{}  `bun:"table:pricing_tiers,alias:pt"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Quantity   int         `bun:"quantity,notnull" json:"quantity"`
	PriceCents int64       `bun:"price_cents,notnull" json:"price_cents"`
	Label      string      `bun:"label" json:"label,omitempty"` // "half dozen"
	Type       PricingType `bun:"pricing_type,notnull,default:'regular'" json:"pricing_type"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
