package tables

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one bakeable pickup window. Capacity is a fixed bagel budget;
// remaining capacity is always derived from the orders referencing the slot,
// never stored as a countdown column.
type TimeSlot struct {
	tableName struct{}  `bun:"table:time_slots,alias:ts"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`

	Date      time.Time `bun:"date,notnull" json:"date"`
	TimeOfDay string    `bun:"time_of_day,notnull" json:"time_of_day"` // "08:30"
	Capacity  int       `bun:"capacity,notnull" json:"capacity"`

	// CutoffAt refuses new orders after this instant. Nil means no cutoff.
	CutoffAt *time.Time `bun:"cutoff_at,nullzero" json:"cutoff_at,omitempty"`

	// IsHangover marks a same-day impulse-order window with its own
	// pricing tier set.
	IsHangover bool `bun:"is_hangover,notnull,default:false" json:"is_hangover"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
