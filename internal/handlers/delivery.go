package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
)

// DeliveryHandler exposes delivery-fee lookups.
type DeliveryHandler struct {
	store store.Store
}

// NewDeliveryHandler constructs a DeliveryHandler.
func NewDeliveryHandler(s store.Store) *DeliveryHandler {
	return &DeliveryHandler{store: s}
}

// ListFees returns every configured delivery fee.
func (h *DeliveryHandler) ListFees(c *fiber.Ctx) error {
	fees := []models.DeliveryFee{}
	if err := h.store.Find(c.Context(), store.ColDeliveryFees, bson.M{}, &fees); err != nil {
		return err
	}
	return c.JSON(fees)
}

// GetFee resolves the fee for a wilaya, matching its name exactly but
// ignoring case.
func (h *DeliveryHandler) GetFee(c *fiber.Ctx) error {
	wilaya := c.Query("wilaya")
	if wilaya == "" {
		return fiber.NewError(fiber.StatusBadRequest, "wilaya is required")
	}

	var fee models.DeliveryFee
	err := h.store.FindOne(c.Context(), store.ColDeliveryFees,
		bson.M{"wilaya": store.ExactInsensitive(wilaya)}, &fee)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no delivery fee configured for this wilaya")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"wilaya": fee.Wilaya,
		"fee":    fee.Fee,
	})
}
