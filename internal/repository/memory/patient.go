package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
)

type PatientRepository struct {
	records *collection[model.Patient, *model.Patient]
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{
		records: newCollection[model.Patient, *model.Patient]("patient"),
	}
}

func (r *PatientRepository) Insert(ctx context.Context, patient *model.Patient) error {
	return r.records.insert(patient)
}

func (r *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return r.records.get(id)
}

func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	return r.records.find(func(p *model.Patient) bool {
		return strings.EqualFold(p.Email, email)
	})
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, update func(*model.Patient) error) (*model.Patient, error) {
	return r.records.update(id, update)
}

func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	return r.records.list(), nil
}
