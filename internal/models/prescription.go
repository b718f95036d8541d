package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription is an uploaded medical prescription. Append-only from the
// API's perspective; there are no update or delete endpoints.
type Prescription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id" validate:"required"`
	ImageURL  string             `bson:"image_url" json:"image_url" validate:"required"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Notification is an entry in the notification history log. No delivery
// happens here; records are kept for history only.
type Notification struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Title  string             `bson:"title" json:"title" validate:"required"`
	Body   string             `bson:"body" json:"body" validate:"required"`
	SentAt time.Time          `bson:"sent_at" json:"sent_at"`
}
