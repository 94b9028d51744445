package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
)

type AppointmentRepository struct {
	records *collection[model.Appointment, *model.Appointment]
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		records: newCollection[model.Appointment, *model.Appointment]("appointment"),
	}
}

func (r *AppointmentRepository) Insert(ctx context.Context, appointment *model.Appointment) error {
	return r.records.insert(appointment)
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return r.records.get(id)
}

func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, update func(*model.Appointment) error) (*model.Appointment, error) {
	return r.records.update(id, update)
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.records.list(), nil
}
