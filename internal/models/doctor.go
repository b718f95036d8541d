package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is a practitioner listed for appointment booking.
type Doctor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Address     string             `bson:"address" json:"address" validate:"required"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Hours       string             `bson:"hours,omitempty" json:"hours,omitempty"`
	Specialties []string           `bson:"specialties" json:"specialties"`
}

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether the status belongs to the closed set.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a booking request. user_id and doctor_id are plain
// references; their existence is not checked.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id" validate:"required"`
	DoctorID  string             `bson:"doctor_id" json:"doctor_id" validate:"required"`
	Date      string             `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time      string             `bson:"time" json:"time" validate:"required,datetime=15:04"`
	Status    AppointmentStatus  `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
