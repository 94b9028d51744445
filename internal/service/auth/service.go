package auth

import (
	"context"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/pkg/auth"
	"github.com/vidamais/portal-api/pkg/errors"
)

// Service exchanges a portal identity for a signed role claim and turns
// presented tokens back into callers. Credential verification is handled by
// the upstream identity provider; this service starts at its output.
type Service struct {
	patients repository.PatientRepository
	jwtSvc   auth.JWTService
	auditor  *audit.Service
}

func NewService(patients repository.PatientRepository, jwtSvc auth.JWTService, auditor *audit.Service) *Service {
	return &Service{
		patients: patients,
		jwtSvc:   jwtSvc,
		auditor:  auditor,
	}
}

// Login resolves the account and issues a token carrying its identity and
// role.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patients.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewUnauthorized(err)
	}

	if patient.Status != model.PatientStatusActive {
		return nil, errors.NewUnauthorized(nil)
	}

	token, err := s.jwtSvc.GenerateToken(patient.ID, string(patient.Role), patient.Email)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	caller := model.Caller{PatientID: patient.ID, Role: patient.Role, Email: patient.Email}
	s.auditor.Log(ctx, caller, "login", "patient", patient.ID, nil)

	return &model.TokenResponse{
		AccessToken: token,
		Role:        patient.Role,
	}, nil
}

// CallerFromToken validates a bearer token and rebuilds the caller context.
func (s *Service) CallerFromToken(ctx context.Context, token string) (model.Caller, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return model.Caller{}, errors.NewUnauthorized(err)
	}

	role := model.Role(claims.Role)
	if role != model.RoleClient && role != model.RoleAdmin {
		return model.Caller{}, errors.NewUnauthorized(nil)
	}

	return model.Caller{
		PatientID: claims.PatientID,
		Role:      role,
		Email:     claims.Email,
	}, nil
}
