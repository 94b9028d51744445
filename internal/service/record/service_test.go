package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository/memory"
	"github.com/vidamais/portal-api/internal/service/access"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *memory.MedicalRecordRepository) {
	t.Helper()
	repo := memory.NewMedicalRecordRepository()
	svc := NewService(repo, access.NewPolicy(nil), audit.NewService(zerolog.Nop()))
	return svc, repo
}

func staff() model.Caller {
	return model.Caller{PatientID: uuid.New(), Role: model.RoleAdmin}
}

func client(id uuid.UUID) model.Caller {
	return model.Caller{PatientID: id, Role: model.RoleClient}
}

func entryFor(patientID uuid.UUID, summary string) *model.CreateMedicalRecordRequest {
	return &model.CreateMedicalRecordRequest{
		PatientID: patientID,
		Date:      time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC),
		Type:      "exam",
		Author:    "Dra. Costa",
		Summary:   summary,
	}
}

func TestAddRecordIsStaffOnly(t *testing.T) {
	svc, repo := newTestService(t)
	me := uuid.New()

	// A patient cannot author entries in their own history, even for
	// themselves.
	_, err := svc.AddRecord(context.Background(), client(me), entryFor(me, "self-diagnosed"))
	assert.True(t, errors.IsForbidden(err))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddRecordAsStaffRequiresTarget(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddRecord(context.Background(), staff(), &model.CreateMedicalRecordRequest{
		Type:    "consultation",
		Author:  "Dr. Silva",
		Summary: "Follow-up",
	})
	assert.True(t, errors.IsValidation(err))

	target := uuid.New()
	rec, err := svc.AddRecord(context.Background(), staff(), entryFor(target, "Follow-up"))
	require.NoError(t, err)
	assert.Equal(t, target, rec.PatientID)
}

func TestListRecordsNewestFirstPerOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	me := uuid.New()

	first, err := svc.AddRecord(ctx, staff(), entryFor(me, "one"))
	require.NoError(t, err)
	second, err := svc.AddRecord(ctx, staff(), entryFor(me, "two"))
	require.NoError(t, err)

	// Another patient's entry must never show up.
	_, err = svc.AddRecord(ctx, staff(), entryFor(uuid.New(), "other"))
	require.NoError(t, err)

	list, err := svc.ListRecords(ctx, client(me))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetForeignRecordReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, staff(), entryFor(uuid.New(), "private"))
	require.NoError(t, err)

	_, err = svc.GetRecord(ctx, client(uuid.New()), rec.ID)
	assert.True(t, errors.IsNotFound(err))

	got, err := svc.GetRecord(ctx, staff(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Summary)
}
