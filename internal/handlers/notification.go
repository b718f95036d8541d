package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/services"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/validation"
)

// NotificationHandler records notification history.
type NotificationHandler struct {
	store    store.Store
	notifier *services.NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(s store.Store, notifier *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{store: s, notifier: notifier}
}

type notificationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// Send persists a notification record and hands it to the (stubbed)
// delivery service.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req notificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	notification := models.Notification{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
		SentAt: time.Now().UTC(),
	}

	id, err := h.store.InsertOne(c.Context(), store.ColNotifications, notification)
	if err != nil {
		return err
	}

	if err := h.notifier.Dispatch(notification); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"_id":  id,
		"sent": true,
	})
}
