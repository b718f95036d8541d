package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DeliveryFee maps a wilaya to its flat delivery cost. One fee per wilaya;
// lookups match the name exactly, ignoring case.
type DeliveryFee struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Wilaya string             `bson:"wilaya" json:"wilaya" validate:"required"`
	Fee    float64            `bson:"fee" json:"fee" validate:"gte=0"`
}
