package model

import "github.com/google/uuid"

// Role is the capability level of a portal caller.
type Role string

const (
	// RoleClient is a self-service patient: sees and mutates only records
	// it owns.
	RoleClient Role = "client"
	// RoleAdmin is clinic staff: sees and mutates all records and must name
	// the target patient when creating records.
	RoleAdmin Role = "admin"
)

// Caller is the verified identity and role context of a request. For
// RoleClient, PatientID matches the owner of the caller's own records; for
// RoleAdmin it identifies the staff member and carries no ownership
// constraint.
type Caller struct {
	PatientID uuid.UUID `json:"patient_id"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
