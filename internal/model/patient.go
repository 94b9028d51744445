package model

import "github.com/google/uuid"

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Name    string        `db:"name" json:"name"`
	Email   string        `db:"email" json:"email"`
	Phone   string        `db:"phone" json:"phone,omitempty"`
	Address string        `db:"address" json:"address,omitempty"`
	Role    Role          `db:"role" json:"role"`
	Status  PatientStatus `db:"status" json:"status"`
}

func (p *Patient) Owner() uuid.UUID { return p.ID }

type RegisterPatientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}
