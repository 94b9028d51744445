package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice is a billing entry owned by a patient. Status is managed by the
// external billing system; this service never transitions it.
type Invoice struct {
	Base
	PatientID   uuid.UUID     `db:"patient_id" json:"patient_id"`
	Number      string        `db:"number" json:"number"`
	IssueDate   time.Time     `db:"issue_date" json:"issue_date"`
	DueDate     time.Time     `db:"due_date" json:"due_date"`
	AmountCents int64         `db:"amount_cents" json:"amount_cents"`
	Status      InvoiceStatus `db:"status" json:"status"`
	Description string        `db:"description" json:"description"`
}

func (i *Invoice) Owner() uuid.UUID { return i.PatientID }
