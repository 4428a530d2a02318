package models

import "time"

// Order statuses. Pending Approval is the only non-terminal state; once an
// order is Approved or Rejected no further transition is allowed.
const (
	StatusPendingApproval = "Pending Approval"
	StatusApproved        = "Approved"
	StatusRejected        = "Rejected"
)

// IsTerminalStatus reports whether status permits no further transition.
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// IsDecision reports whether status is a valid admin decision.
func IsDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// OrderItem is a snapshot of a catalog product at submission time. It is a
// copy, not a reference: later catalog edits never change a placed order.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Category  string  `json:"category" bson:"category"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Order is created once in Pending Approval by checkout and mutated exactly
// once by an administrator decision. TotalAmount is computed at submission
// and never recomputed. ReceiptImage is an opaque encoded payment proof.
type Order struct {
	ID              string          `json:"id" bson:"_id"`
	UserID          string          `json:"user_id" bson:"user_id"`
	CustomerEmail   string          `json:"customer_email" bson:"customer_email"`
	CustomerName    string          `json:"customer_name" bson:"customer_name"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"total_amount" bson:"total_amount"`
	ReceiptImage    string          `json:"receipt_image,omitempty" bson:"receipt_image,omitempty"`
	Status          string          `json:"status" bson:"status"`
	AdminComment    string          `json:"admin_comment,omitempty" bson:"admin_comment,omitempty"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}
