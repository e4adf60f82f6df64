package structs

// MerchCheckoutRequest is the merch storefront checkout submission.
// Items maps item id -> requested quantity.
type MerchCheckoutRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`

	Items map[string]int `json:"items" validate:"required,min=1"`
}

// MerchCheckoutResponse carries the hosted checkout URL for the created
// merch order.
type MerchCheckoutResponse struct {
	OrderId     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}
