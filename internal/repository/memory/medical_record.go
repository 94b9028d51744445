package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
)

// MedicalRecordRepository is append-only: records can be inserted and read
// but never updated, matching the clinical history contract.
type MedicalRecordRepository struct {
	records *collection[model.MedicalRecord, *model.MedicalRecord]
}

func NewMedicalRecordRepository() *MedicalRecordRepository {
	return &MedicalRecordRepository{
		records: newCollection[model.MedicalRecord, *model.MedicalRecord]("medical record"),
	}
}

func (r *MedicalRecordRepository) Insert(ctx context.Context, record *model.MedicalRecord) error {
	return r.records.insert(record)
}

func (r *MedicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	return r.records.get(id)
}

func (r *MedicalRecordRepository) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	return r.records.list(), nil
}
