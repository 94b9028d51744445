package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository"
	"github.com/vidamais/portal-api/internal/service/access"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/pkg/errors"
)

const entityType = "medical_record"

// Service exposes the append-only clinical history. Records are never
// updated or deleted; corrections are new entries.
type Service struct {
	repo    repository.MedicalRecordRepository
	policy  *access.Policy
	auditor *audit.Service
}

func NewService(repo repository.MedicalRecordRepository, policy *access.Policy, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		policy:  policy,
		auditor: auditor,
	}
}

// ListRecords returns the history entries visible to the caller, newest
// first.
func (s *Service) ListRecords(ctx context.Context, caller model.Caller) ([]*model.MedicalRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return access.FilterVisible(s.policy, entityType, caller, records), nil
}

func (s *Service) GetRecord(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.MedicalRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if visible := access.FilterVisible(s.policy, entityType, caller, []*model.MedicalRecord{rec}); len(visible) == 0 {
		return nil, errors.NewNotFound(entityType, nil)
	}

	s.auditor.Log(ctx, caller, "read", entityType, id, nil)
	return rec, nil
}

// AddRecord appends a history entry for the named patient. Clinical
// history is authored by clinicians and labs; patients only read it.
func (s *Service) AddRecord(ctx context.Context, caller model.Caller, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if !caller.IsAdmin() {
		return nil, errors.NewForbidden("only clinic staff may append clinical history", nil)
	}

	ownerID, err := s.policy.ResolveOwner(caller, entityType, req.PatientID)
	if err != nil {
		return nil, err
	}

	rec := &model.MedicalRecord{
		PatientID: ownerID,
		Date:      req.Date,
		Type:      req.Type,
		Author:    req.Author,
		Summary:   req.Summary,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to add medical record: %w", err)
	}

	s.auditor.Log(ctx, caller, "create", entityType, rec.ID, &audit.LogOptions{Changes: rec})
	return rec, nil
}
