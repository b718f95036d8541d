package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/validation"
)

// ProductHandler manages catalogue endpoints.
type ProductHandler struct {
	store store.Store
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(s store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

// ListProducts returns catalogue entries matching the optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	query := store.ProductQuery{
		Q:          c.Query("q"),
		Category:   c.Query("category"),
		Brand:      c.Query("brand"),
		Color:      c.Query("color"),
		FrameShape: c.Query("frame_shape"),
		Type:       c.Query("type"),
	}

	if v := c.Query("price_min"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			query.PriceMin = &parsed
		}
	}
	if v := c.Query("price_max"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			query.PriceMax = &parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			query.Limit = parsed
		}
	}

	products := []models.Product{}
	err := h.store.Find(c.Context(), store.ColProducts, query.Filter(), &products,
		store.Limit(query.ResultLimit()))
	if err != nil {
		return err
	}

	return c.JSON(products)
}

type productRequest struct {
	Title       string                 `json:"title" validate:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" validate:"gte=0"`
	Brand       string                 `json:"brand"`
	Color       string                 `json:"color"`
	FrameShape  string                 `json:"frame_shape"`
	Type        string                 `json:"type"`
	Category    models.ProductCategory `json:"category" validate:"required,oneof=lentilles solutions lunettes_medicales lunettes_soleil"`
	Images      []string               `json:"images"`
	InStock     *bool                  `json:"in_stock"`
	SKU         string                 `json:"sku"`
}

// CreateProduct adds a catalogue entry.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
		Color:       req.Color,
		FrameShape:  req.FrameShape,
		Type:        req.Type,
		Category:    req.Category,
		Images:      req.Images,
		InStock:     true,
		SKU:         req.SKU,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	id, err := h.store.InsertOne(c.Context(), store.ColProducts, product)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"_id": id})
}

// GetProduct returns a single catalogue entry.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.store.FindOne(c.Context(), store.ColProducts, filter, &product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(product)
}

type updateProductRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Price       *float64                `json:"price"`
	Brand       string                  `json:"brand"`
	Color       string                  `json:"color"`
	FrameShape  string                  `json:"frame_shape"`
	Type        string                  `json:"type"`
	Category    *models.ProductCategory `json:"category"`
	Images      []string                `json:"images"`
	InStock     *bool                   `json:"in_stock"`
	SKU         string                  `json:"sku"`
}

// UpdateProduct applies a partial update to a catalogue entry.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := bson.M{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.FrameShape != "" {
		updates["frame_shape"] = req.FrameShape
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category")
		}
		updates["category"] = *req.Category
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if req.SKU != "" {
		updates["sku"] = req.SKU
	}
	if len(updates) == 0 {
		return c.JSON(fiber.Map{"updated": false})
	}

	res, err := h.store.UpdateOne(c.Context(), store.ColProducts, filter, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"updated": res.Modified == 1})
}

// DeleteProduct removes a catalogue entry.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	deleted, err := h.store.DeleteOne(c.Context(), store.ColProducts, filter)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"deleted": true})
}
