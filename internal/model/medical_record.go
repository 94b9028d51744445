package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is an append-only clinical history entry. There is no
// update or delete path: corrections are new entries.
type MedicalRecord struct {
	Base
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Date      time.Time `db:"date" json:"date"`
	Type      string    `db:"type" json:"type"`
	Author    string    `db:"author" json:"author"`
	Summary   string    `db:"summary" json:"summary"`
}

func (r *MedicalRecord) Owner() uuid.UUID { return r.PatientID }

type CreateMedicalRecordRequest struct {
	// PatientID is the patient the entry belongs to. Appending is staff
	// only, so a target is always required.
	PatientID uuid.UUID `json:"patient_id"`
	Date      time.Time `json:"date" binding:"required"`
	Type      string    `json:"type" binding:"required"`
	Author    string    `json:"author" binding:"required"`
	Summary   string    `json:"summary" binding:"required,max=4000"`
}
