package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/validation"
)

// PrescriptionHandler manages prescription uploads. The collection is
// append-only; there are no update or delete endpoints.
type PrescriptionHandler struct {
	store store.Store
}

// NewPrescriptionHandler constructs a PrescriptionHandler.
func NewPrescriptionHandler(s store.Store) *PrescriptionHandler {
	return &PrescriptionHandler{store: s}
}

type prescriptionRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	ImageURL string `json:"image_url" validate:"required"`
	Notes    string `json:"notes"`
}

// Create stores an uploaded prescription reference.
func (h *PrescriptionHandler) Create(c *fiber.Ctx) error {
	var req prescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	prescription := models.Prescription{
		UserID:    req.UserID,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	id, err := h.store.InsertOne(c.Context(), store.ColPrescriptions, prescription)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"_id": id})
}

// List returns a user's prescriptions, newest first.
func (h *PrescriptionHandler) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	prescriptions := []models.Prescription{}
	err := h.store.Find(c.Context(), store.ColPrescriptions, bson.M{"user_id": userID},
		&prescriptions, store.SortDesc("created_at"))
	if err != nil {
		return err
	}

	return c.JSON(prescriptions)
}
