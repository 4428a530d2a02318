package models

import "time"

// Notification types
const (
	TypeOrderApproved = "order_approved"
	TypeOrderRejected = "order_rejected"
	TypeGeneric       = "generic"
)

// Notification is an in-app message for one user. OrderID is a plain
// back-reference, not an ownership link. Read starts false and only ever
// flips to true; notifications are never deleted.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Message   string    `json:"message" bson:"message"`
	Type      string    `json:"type" bson:"type"`
	OrderID   string    `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
