package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductCategory is the closed set of catalogue categories.
type ProductCategory string

const (
	CategoryLentilles         ProductCategory = "lentilles"
	CategorySolutions         ProductCategory = "solutions"
	CategoryLunettesMedicales ProductCategory = "lunettes_medicales"
	CategoryLunettesSoleil    ProductCategory = "lunettes_soleil"
)

// Valid reports whether the category belongs to the closed set.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryLentilles, CategorySolutions, CategoryLunettesMedicales, CategoryLunettesSoleil:
		return true
	}
	return false
}

// Product is a catalogue entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	FrameShape  string             `bson:"frame_shape,omitempty" json:"frame_shape,omitempty"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
	Category    ProductCategory    `bson:"category" json:"category" validate:"required,oneof=lentilles solutions lunettes_medicales lunettes_soleil"`
	Images      []string           `bson:"images" json:"images"`
	InStock     bool               `bson:"in_stock" json:"in_stock"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
}
