package domain

import "time"

// Cart represents a shopping cart for one storefront session.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartItem represents a single line item in the cart. The price and display
// fields are cached from the catalog at the time the item was added.
type CartItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Subtotal calculates the sum of price times quantity over all items (in cents).
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line item for the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Pricing holds the shipping pricing policy (all amounts in cents).
type Pricing struct {
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold int64
	// ShippingFee is the flat fee charged below the threshold.
	ShippingFee int64
}

// DefaultPricing returns the storefront's default shipping policy:
// free shipping on orders over $50, otherwise a flat $8 fee.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 5000,
		ShippingFee:           800,
	}
}

// Shipping returns the shipping cost for the cart. An empty cart ships for
// free, as does any cart whose subtotal exceeds the free-shipping threshold.
func (p Pricing) Shipping(c *Cart) int64 {
	if len(c.Items) == 0 {
		return 0
	}
	if c.Subtotal() > p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

// Total returns subtotal plus shipping.
func (p Pricing) Total(c *Cart) int64 {
	return c.Subtotal() + p.Shipping(c)
}

// CartSummary holds the derived pricing values for a cart.
type CartSummary struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Summarize computes the full pricing breakdown for a cart.
func (p Pricing) Summarize(c *Cart) CartSummary {
	subtotal := c.Subtotal()
	shipping := p.Shipping(c)
	return CartSummary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
