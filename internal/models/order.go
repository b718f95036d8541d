package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of order lifecycle stages. Updates are
// validated for set membership only; nothing prevents skipping stages or
// moving backwards.
type OrderStatus string

const (
	StatusEnPreparation      OrderStatus = "en_preparation"
	StatusExpediee           OrderStatus = "expediee"
	StatusEnCoursDeLivraison OrderStatus = "en_cours_de_livraison"
	StatusLivree             OrderStatus = "livree"
)

// Valid reports whether the status belongs to the closed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusEnPreparation, StatusExpediee, StatusEnCoursDeLivraison, StatusLivree:
		return true
	}
	return false
}

// OrderItem is an immutable snapshot of a cart line taken at checkout time.
// It does not reflect later product changes, and product_id is not checked
// against the catalogue.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id" validate:"required"`
	Title     string  `bson:"title" json:"title" validate:"required"`
	Price     float64 `bson:"price" json:"price" validate:"gte=0"`
	Quantity  int     `bson:"quantity" json:"quantity" validate:"min=1"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Order is a placed order with item and address snapshots and the
// server-computed totals.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Address     Address            `bson:"address" json:"address"`
	Wilaya      string             `bson:"wilaya" json:"wilaya"`
	Subtotal    float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee float64            `bson:"delivery_fee" json:"delivery_fee"`
	Total       float64            `bson:"total" json:"total"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
