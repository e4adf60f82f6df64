package tables

import (
	"time"

	"github.com/google/uuid"
)

// BagelType is a flavor customers can put in their order.
type BagelType struct {
	tableName struct{}  `bun:"table:bagel_types,alias:bt"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name      string `bun:"name,notnull,unique" json:"name"`
	IsActive  bool   `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder int    `bun:"sort_order,notnull,default:0" json:"sort_order"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// AddOnType is a priced extra (schmears, lox, coffee) sold alongside bagels.
// Add-ons never count toward slot capacity.
type AddOnType struct {
	tableName struct{}  `bun:"table:add_on_types,alias:at"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name       string `bun:"name,notnull,unique" json:"name"`
	PriceCents int64  `bun:"price_cents,notnull" json:"price_cents"`
	IsActive   bool   `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder  int    `bun:"sort_order,notnull,default:0" json:"sort_order"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Ingredient is a baking-supply row for the admin inventory console. It is
// bookkeeping only and never gates order creation.
type Ingredient struct {
	tableName struct{}  `bun:"table:ingredients,alias:ing"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Name       string  `bun:"name,notnull,unique" json:"name"`
	Quantity   float64 `bun:"quantity,notnull,default:0" json:"quantity"`
	Unit       string  `bun:"unit,notnull" json:"unit"` // "kg", "bags"
	LowStockAt float64 `bun:"low_stock_at,notnull,default:0" json:"low_stock_at"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
