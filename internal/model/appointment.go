package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Bookable time slots, specialties and doctors offered by the clinic.
var (
	AppointmentSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

	Specialties = []string{"general", "cardiology", "orthopedics", "dermatology", "pediatrics"}

	Doctors = []string{"Dr. Silva", "Dra. Costa", "Dr. Mendes", "Dra. Rocha", "Dr. Tavares"}
)

func IsValidSlot(slot string) bool           { return contains(AppointmentSlots, slot) }
func IsValidSpecialty(specialty string) bool { return contains(Specialties, specialty) }
func IsValidDoctor(doctor string) bool       { return contains(Doctors, doctor) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type Appointment struct {
	Base
	PatientID uuid.UUID         `db:"patient_id" json:"patient_id"`
	Date      time.Time         `db:"date" json:"date"`
	TimeSlot  string            `db:"time_slot" json:"time_slot"`
	Specialty string            `db:"specialty" json:"specialty"`
	Doctor    string            `db:"doctor" json:"doctor"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
	Status    AppointmentStatus `db:"status" json:"status"`
}

func (a *Appointment) Owner() uuid.UUID { return a.PatientID }

type CreateAppointmentRequest struct {
	// PatientID is the target patient. Required for admin callers; ignored
	// and overridden for client callers.
	PatientID uuid.UUID `json:"patient_id"`
	Date      time.Time `json:"date" binding:"required"`
	TimeSlot  string    `json:"time_slot" binding:"required,timeslot"`
	Specialty string    `json:"specialty" binding:"required,specialty"`
	Doctor    string    `json:"doctor" binding:"required,doctor"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

type RescheduleAppointmentRequest struct {
	Date      *time.Time `json:"date"`
	TimeSlot  *string    `json:"time_slot"`
	Specialty *string    `json:"specialty"`
	Doctor    *string    `json:"doctor"`
	Notes     *string    `json:"notes"`
}
