package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/pkg/errors"
)

func newAppointment(owner uuid.UUID, slot string) *model.Appointment {
	return &model.Appointment{
		PatientID: owner,
		Date:      time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:  slot,
		Specialty: "general",
		Doctor:    "Dr. Silva",
		Status:    model.AppointmentStatusScheduled,
	}
}

func TestInsertAssignsIdentityAndVersion(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	apt := newAppointment(uuid.New(), "09:00")
	require.NoError(t, repo.Insert(ctx, apt))

	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.Equal(t, int64(1), apt.Version)
	assert.False(t, apt.CreatedAt.IsZero())

	got, err := repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, apt.ID, got.ID)
	assert.Equal(t, "09:00", got.TimeSlot)
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	repo := NewAppointmentRepository()

	_, err := repo.Get(context.Background(), uuid.New())
	assert.True(t, errors.IsNotFound(err))
}

func TestListNewestFirst(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()
	owner := uuid.New()

	first := newAppointment(owner, "09:00")
	second := newAppointment(owner, "10:00")
	third := newAppointment(owner, "11:00")
	for _, apt := range []*model.Appointment{first, second, third} {
		require.NoError(t, repo.Insert(ctx, apt))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, third.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, first.ID, list[2].ID)
}

func TestUpdateAppliesPatchAndBumpsVersion(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	apt := newAppointment(uuid.New(), "09:00")
	require.NoError(t, repo.Insert(ctx, apt))

	updated, err := repo.Update(ctx, apt.ID, func(a *model.Appointment) error {
		a.TimeSlot = "14:00"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", updated.TimeSlot)
	assert.Equal(t, int64(2), updated.Version)
}

func TestFailedUpdateLeavesRecordUntouched(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	apt := newAppointment(uuid.New(), "09:00")
	require.NoError(t, repo.Insert(ctx, apt))

	_, err := repo.Update(ctx, apt.ID, func(a *model.Appointment) error {
		a.TimeSlot = "14:00"
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	got, err := repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.TimeSlot)
	assert.Equal(t, int64(1), got.Version)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	apt := newAppointment(uuid.New(), "09:00")
	require.NoError(t, repo.Insert(ctx, apt))

	got, err := repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	got.TimeSlot = "16:00"

	again, err := repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", again.TimeSlot)
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	apt := newAppointment(uuid.New(), "09:00")
	require.NoError(t, repo.Insert(ctx, apt))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, apt.ID, func(a *model.Appointment) error {
				a.Notes += "x"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, writers)
	assert.Equal(t, int64(writers+1), got.Version)
}

func TestPatientGetByEmailIsCaseInsensitive(t *testing.T) {
	repo := NewPatientRepository()
	ctx := context.Background()

	p := &model.Patient{
		Name:   "Paciente Alfa",
		Email:  "alfa@example.com",
		Role:   model.RoleClient,
		Status: model.PatientStatusActive,
	}
	require.NoError(t, repo.Insert(ctx, p))

	got, err := repo.GetByEmail(ctx, "ALFA@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "unknown@example.com")
	assert.True(t, errors.IsNotFound(err))
}
