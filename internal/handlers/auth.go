package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/config"
	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
	"github.com/example/visualhealth/internal/utils"
	"github.com/example/visualhealth/internal/validation"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	store store.Store
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: s, cfg: cfg}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account. Email uniqueness is enforced by a
// pre-check, not a store-level constraint.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var existing models.User
	err := h.store.FindOne(c.Context(), store.ColUsers, bson.M{"email": req.Email}, &existing)
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already in use")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	now := time.Now().UTC()
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Addresses:    []models.Address{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := h.store.InsertOne(c.Context(), store.ColUsers, user)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, id, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"user_id": id,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an existing user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	err := h.store.FindOne(c.Context(), store.ColUsers, bson.M{"email": req.Email}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"user_id": user.ID.Hex(),
		"token":   token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword acknowledges a reset request. No mail is sent.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	err := h.store.FindOne(c.Context(), store.ColUsers, bson.M{"email": req.Email}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "password reset link sent (simulation)"})
}
