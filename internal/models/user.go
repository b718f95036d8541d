package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a delivery address embedded in a User document. The label is
// the removal key and is expected to be unique per user.
type Address struct {
	Label    string `bson:"label" json:"label" validate:"required"`
	FullName string `bson:"full_name" json:"full_name" validate:"required"`
	Phone    string `bson:"phone" json:"phone" validate:"required"`
	Wilaya   string `bson:"wilaya" json:"wilaya" validate:"required"`
	Commune  string `bson:"commune,omitempty" json:"commune,omitempty"`
	Street   string `bson:"street" json:"street" validate:"required"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// User represents a registered customer. The password hash is never
// serialized to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Email        string             `bson:"email" json:"email" validate:"required,email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
