package structs

// Admin console payloads. Everything here arrives through an authenticated
// session; validation still applies because the console is just a browser.

type SlotRequest struct {
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeOfDay  string  `json:"time_of_day" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required,gt=0"`
	CutoffAt   *string `json:"cutoff_at,omitempty" validate:"omitempty"`
	IsHangover bool    `json:"is_hangover"`
}

type PricingTierRequest struct {
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
	Label      string `json:"label,omitempty"`
	Type       string `json:"pricing_type" validate:"required,oneof=regular hangover"`
}

type BagelTypeRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

type AddOnTypeRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
	IsActive   bool   `json:"is_active"`
	SortOrder  int    `json:"sort_order"`
}

type IngredientRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Quantity   float64 `json:"quantity" validate:"gte=0"`
	Unit       string  `json:"unit" validate:"required"`
	LowStockAt float64 `json:"low_stock_at" validate:"gte=0"`
}

type MerchItemRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Size       string `json:"size,omitempty"`
	PriceCents int64  `json:"price_cents" validate:"required,gt=0"`
	// Nil stock means unlimited.
	Stock    *int `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive bool `json:"is_active"`
}

type FakeFlagRequest struct {
	IsFake bool `json:"is_fake"`
}
