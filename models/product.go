package models

import "time"

// Product is a catalog record. Stock is a pointer: nil means an unlimited
// legacy item that predates stock tracking, a value is the purchasable
// ceiling enforced by the cart.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Stock       *int      `json:"stock,omitempty" bson:"stock,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// InStock reports whether at least qty units can be taken. A nil Stock
// never limits.
func (p *Product) InStock(qty int) bool {
	return p.Stock == nil || *p.Stock >= qty
}
