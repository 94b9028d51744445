package patient

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

const entityType = "patient"

type Service struct {
	repo    repository.PatientRepository
	policy  *access.Policy
	auditor *audit.Service
}

func NewService(repo repository.PatientRepository, policy *access.Policy, auditor *audit.Service) *Service {
	return &Service{
		repo:    repo,
		policy:  policy,
		auditor: auditor,
	}
}

// GetProfile returns the caller's own patient record.
func (s *Service) GetProfile(ctx context.Context, caller model.Caller) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, caller.PatientID)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

// UpdateProfile patches contact fields on the caller's own record.
func (s *Service) UpdateProfile(ctx context.Context, caller model.Caller, req *model.UpdateProfileRequest) (*model.Patient, error) {
	return s.UpdatePatient(ctx, caller, caller.PatientID, req)
}

// UpdatePatient patches contact fields on a patient record the caller may
// mutate. Staff use this to correct a client's details; a client can only
// reach their own record.
func (s *Service) UpdatePatient(ctx context.Context, caller model.Caller, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Patient, error) {
	patient, err := s.repo.Update(ctx, id, func(p *model.Patient) error {
		if err := s.policy.Authorize(caller, entityType, p); err != nil {
			return err
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, caller, "update", entityType, patient.ID, &audit.LogOptions{Changes: req})
	return patient, nil
}

// RegisterPatient creates a portal account for a new patient. Staff only.
func (s *Service) RegisterPatient(ctx context.Context, caller model.Caller, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if !caller.IsAdmin() {
		return nil, errors.NewForbidden("only staff may register patients", nil)
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.NewValidation(fmt.Sprintf("a patient with email %s already exists", req.Email), nil)
	}

	patient := &model.Patient{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    model.RoleClient,
		Status:  model.PatientStatusActive,
	}

	if err := s.repo.Insert(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	s.auditor.Log(ctx, caller, "create", entityType, patient.ID, &audit.LogOptions{Changes: patient})
	return patient, nil
}

// ListPatients returns the patient directory visible to the caller. The
// visibility filter reduces this to the caller's own record for clients.
func (s *Service) ListPatients(ctx context.Context, caller model.Caller) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return access.FilterVisible(s.policy, entityType, caller, patients), nil
}

// GetPatient loads a patient record the caller may see.
func (s *Service) GetPatient(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if visible := access.FilterVisible(s.policy, entityType, caller, []*model.Patient{patient}); len(visible) == 0 {
		return nil, errors.NewNotFound(entityType, nil)
	}
	return patient, nil
}
