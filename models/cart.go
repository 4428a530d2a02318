package models

import "time"

// CartLine is one product in a cart with the catalog fields denormalized at
// add time. Stock is the ceiling captured when the line was created; it is
// re-validated against the live catalog at checkout.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image,omitempty"`
	Stock     *int    `json:"stock,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart holds at most one line per product for a single customer.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total is the sum of price x quantity over all lines, recomputed on every
// call so it can never go stale.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
