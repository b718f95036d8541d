package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/services"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/validation"
)

// OrderHandler manages checkout and order-tracking endpoints.
type OrderHandler struct {
	store    store.Store
	checkout *services.CheckoutService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(s store.Store, checkout *services.CheckoutService) *OrderHandler {
	return &OrderHandler{store: s, checkout: checkout}
}

type checkoutRequest struct {
	UserID  string             `json:"user_id" validate:"required"`
	Items   []models.OrderItem `json:"items" validate:"required,dive"`
	Address models.Address     `json:"address" validate:"required"`
	Wilaya  string             `json:"wilaya" validate:"required"`
}

// Checkout computes totals server-side and persists the order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := h.checkout.Checkout(c.Context(), services.CheckoutInput{
		UserID:  req.UserID,
		Items:   req.Items,
		Address: req.Address,
		Wilaya:  req.Wilaya,
	})
	if errors.Is(err, services.ErrFeeNotConfigured) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"order_id":     res.OrderID,
		"total":        res.Total,
		"delivery_fee": res.DeliveryFee,
	})
}

// ListOrders returns a user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	orders := []models.Order{}
	err := h.store.Find(c.Context(), store.ColOrders, bson.M{"user_id": userID}, &orders,
		store.SortDesc("created_at"))
	if err != nil {
		return err
	}

	return c.JSON(orders)
}

// GetOrder returns a single order.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.store.FindOne(c.Context(), store.ColOrders, filter, &order); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(order)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus moves the order to another lifecycle stage. Only set
// membership is checked; stage skipping and backward moves are accepted.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !req.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	res, err := h.store.UpdateOne(c.Context(), store.ColOrders, filter, bson.M{"$set": bson.M{
		"status":     req.Status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"updated": true})
}
