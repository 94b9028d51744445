package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
)

// All repository interfaces in one file. Updates take an updater applied
// atomically by the store: either the updater succeeds and the new state is
// stored with a bumped version, or the record is left untouched.
type (
	AppointmentRepository interface {
		Insert(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, id uuid.UUID, update func(*model.Appointment) error) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
	}

	InvoiceRepository interface {
		Insert(ctx context.Context, invoice *model.Invoice) error
		Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
		List(ctx context.Context) ([]*model.Invoice, error)
	}

	MedicalRecordRepository interface {
		Insert(ctx context.Context, record *model.MedicalRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
		List(ctx context.Context) ([]*model.MedicalRecord, error)
	}

	PatientRepository interface {
		Insert(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		GetByEmail(ctx context.Context, email string) (*model.Patient, error)
		Update(ctx context.Context, id uuid.UUID, update func(*model.Patient) error) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
	}
)
