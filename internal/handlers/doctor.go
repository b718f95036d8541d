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

// DoctorHandler manages doctor listings and appointment booking.
type DoctorHandler struct {
	store store.Store
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(s store.Store) *DoctorHandler {
	return &DoctorHandler{store: s}
}

// ListDoctors returns doctors matching the optional free-text query.
func (h *DoctorHandler) ListDoctors(c *fiber.Ctx) error {
	query := store.DoctorQuery{Q: c.Query("q")}

	doctors := []models.Doctor{}
	if err := h.store.Find(c.Context(), store.ColDoctors, query.Filter(), &doctors); err != nil {
		return err
	}

	return c.JSON(doctors)
}

type doctorRequest struct {
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Phone       string   `json:"phone"`
	Hours       string   `json:"hours"`
	Specialties []string `json:"specialties"`
}

// CreateDoctor adds a doctor listing.
func (h *DoctorHandler) CreateDoctor(c *fiber.Ctx) error {
	var req doctorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	doctor := models.Doctor{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Hours:       req.Hours,
		Specialties: req.Specialties,
	}
	if doctor.Specialties == nil {
		doctor.Specialties = []string{}
	}

	id, err := h.store.InsertOne(c.Context(), store.ColDoctors, doctor)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"_id": id})
}

// GetDoctor returns a single doctor listing.
func (h *DoctorHandler) GetDoctor(c *fiber.Ctx) error {
	filter, err := store.ByID(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var doctor models.Doctor
	if err := h.store.FindOne(c.Context(), store.ColDoctors, filter, &doctor); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "doctor not found")
		}
		return err
	}

	return c.JSON(doctor)
}

type appointmentRequest struct {
	UserID   string                   `json:"user_id" validate:"required"`
	DoctorID string                   `json:"doctor_id" validate:"required"`
	Date     string                   `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string                   `json:"time" validate:"required,datetime=15:04"`
	Status   models.AppointmentStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	Notes    string                   `json:"notes"`
}

// CreateAppointment books an appointment. Neither the user nor the doctor
// reference is checked for existence.
func (h *DoctorHandler) CreateAppointment(c *fiber.Ctx) error {
	var req appointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentPending
	}

	appointment := models.Appointment{
		UserID:    req.UserID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	id, err := h.store.InsertOne(c.Context(), store.ColAppointments, appointment)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"_id":    id,
		"status": appointment.Status,
	})
}

// ListAppointments returns a user's appointments, newest first.
func (h *DoctorHandler) ListAppointments(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	appointments := []models.Appointment{}
	err := h.store.Find(c.Context(), store.ColAppointments, bson.M{"user_id": userID},
		&appointments, store.SortDesc("created_at"))
	if err != nil {
		return err
	}

	return c.JSON(appointments)
}
