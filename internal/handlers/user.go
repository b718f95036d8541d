package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/validation"
)

// UserHandler manages user profile and address endpoints.
type UserHandler struct {
	store store.Store
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// GetUser returns a user profile. The password hash is never serialized.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.store.FindOne(c.Context(), store.ColUsers, filter, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(user)
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateUser applies a partial profile update.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		return c.JSON(fiber.Map{"updated": false})
	}
	updates["updated_at"] = time.Now().UTC()

	res, err := h.store.UpdateOne(c.Context(), store.ColUsers, filter, bson.M{"$set": updates})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"updated": res.Modified == 1})
}

// ListAddresses returns the user's embedded addresses.
func (h *UserHandler) ListAddresses(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.store.FindOne(c.Context(), store.ColUsers, filter, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	if user.Addresses == nil {
		user.Addresses = []models.Address{}
	}
	return c.JSON(user.Addresses)
}

// AddAddress appends an address to the user's list.
func (h *UserHandler) AddAddress(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(addr); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := h.store.UpdateOne(c.Context(), store.ColUsers, filter, bson.M{"$push": bson.M{"addresses": addr}})
	if err != nil {
		return err
	}
	if res.Matched == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{"added": true})
}

// RemoveAddress removes the address with the given label.
func (h *UserHandler) RemoveAddress(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	label := c.Query("label")
	if label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "label is required")
	}

	res, err := h.store.UpdateOne(c.Context(), store.ColUsers, filter,
		bson.M{"$pull": bson.M{"addresses": bson.M{"label": label}}})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"deleted": res.Modified > 0})
}
