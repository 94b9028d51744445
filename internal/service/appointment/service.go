package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository"
	"github.com/vidamais/portal-api/internal/service/access"
	"github.com/vidamais/portal-api/internal/service/audit"
	"github.com/vidamais/portal-api/internal/service/notification"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/metrics"
)

const entityType = "appointment"

type Service struct {
	repo     repository.AppointmentRepository
	policy   *access.Policy
	notifSvc notification.Service
	auditor  *audit.Service
	metrics  *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, policy *access.Policy, notifSvc notification.Service, auditor *audit.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		notifSvc: notifSvc,
		auditor:  auditor,
		metrics:  m,
	}
}

// CreateAppointment validates the booking, resolves the owning patient
// through the access policy and stores the appointment as scheduled.
func (s *Service) CreateAppointment(ctx context.Context, caller model.Caller, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	defer s.observe("create", time.Now())

	if err := validateBooking(req.Date, req.TimeSlot, req.Specialty, req.Doctor); err != nil {
		s.count("create", "invalid")
		return nil, err
	}

	ownerID, err := s.policy.ResolveOwner(caller, entityType, req.PatientID)
	if err != nil {
		s.count("create", "denied")
		return nil, err
	}

	apt := &model.Appointment{
		PatientID: ownerID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Specialty: req.Specialty,
		Doctor:    req.Doctor,
		Notes:     req.Notes,
		Status:    model.AppointmentStatusScheduled,
	}

	if err := s.repo.Insert(ctx, apt); err != nil {
		s.count("create", "error")
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notify(ctx, apt, notification.EventAppointmentCreated, caller)
	s.auditor.Log(ctx, caller, "create", entityType, apt.ID, &audit.LogOptions{Changes: apt})
	s.count("create", "success")
	return apt, nil
}

// GetAppointment loads a single appointment the caller is allowed to see.
func (s *Service) GetAppointment(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// A record invisible to the caller reads as missing, not as forbidden,
	// so responses do not confirm that another patient's id exists.
	if visible := access.FilterVisible(s.policy, entityType, caller, []*model.Appointment{apt}); len(visible) == 0 {
		return nil, errors.NewNotFound(entityType, nil)
	}

	s.auditor.Log(ctx, caller, "read", entityType, id, nil)
	return apt, nil
}

// ListAppointments returns the appointments visible to the caller, newest
// created first.
func (s *Service) ListAppointments(ctx context.Context, caller model.Caller) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return access.FilterVisible(s.policy, entityType, caller, appointments), nil
}

// RescheduleAppointment patches booking fields on an active appointment.
// The status is left unchanged; completed or cancelled appointments are
// terminal and reject the move.
func (s *Service) RescheduleAppointment(ctx context.Context, caller model.Caller, id uuid.UUID, req *model.RescheduleAppointmentRequest) (*model.Appointment, error) {
	defer s.observe("reschedule", time.Now())

	apt, err := s.repo.Update(ctx, id, func(apt *model.Appointment) error {
		if err := s.policy.Authorize(caller, entityType, apt); err != nil {
			return err
		}
		if apt.Status.Terminal() {
			return errors.NewDomain(
				fmt.Sprintf("cannot reschedule a %s appointment", apt.Status), nil)
		}

		if req.Date != nil {
			apt.Date = *req.Date
		}
		if req.TimeSlot != nil {
			apt.TimeSlot = *req.TimeSlot
		}
		if req.Specialty != nil {
			apt.Specialty = *req.Specialty
		}
		if req.Doctor != nil {
			apt.Doctor = *req.Doctor
		}
		if req.Notes != nil {
			apt.Notes = *req.Notes
		}

		return validateBooking(apt.Date, apt.TimeSlot, apt.Specialty, apt.Doctor)
	})
	if err != nil {
		s.count("reschedule", outcome(err))
		return nil, err
	}

	s.auditor.Log(ctx, caller, "reschedule", entityType, id, &audit.LogOptions{Changes: req})
	s.count("reschedule", "success")
	return apt, nil
}

// CancelAppointment transitions an active appointment to cancelled.
// Cancelling an appointment that is already cancelled or completed is
// rejected rather than treated as a no-op.
func (s *Service) CancelAppointment(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Appointment, error) {
	defer s.observe("cancel", time.Now())

	apt, err := s.repo.Update(ctx, id, func(apt *model.Appointment) error {
		if err := s.policy.Authorize(caller, entityType, apt); err != nil {
			return err
		}
		if apt.Status == model.AppointmentStatusCancelled {
			return errors.NewDomain("appointment is already cancelled", nil)
		}
		if apt.Status == model.AppointmentStatusCompleted {
			return errors.NewDomain("cannot cancel a completed appointment", nil)
		}

		apt.Status = model.AppointmentStatusCancelled
		return nil
	})
	if err != nil {
		s.count("cancel", outcome(err))
		return nil, err
	}

	s.notify(ctx, apt, notification.EventAppointmentCancelled, caller)
	s.auditor.Log(ctx, caller, "cancel", entityType, id, &audit.LogOptions{
		Changes: map[string]interface{}{"status": apt.Status},
	})
	s.count("cancel", "success")
	return apt, nil
}

func validateBooking(date time.Time, slot, specialty, doctor string) error {
	if date.IsZero() {
		return errors.NewValidation("appointment date is required", nil)
	}
	if !model.IsValidSlot(slot) {
		return errors.NewValidation(fmt.Sprintf("invalid time slot %q", slot), nil)
	}
	if !model.IsValidSpecialty(specialty) {
		return errors.NewValidation(fmt.Sprintf("invalid specialty %q", specialty), nil)
	}
	if !model.IsValidDoctor(doctor) {
		return errors.NewValidation(fmt.Sprintf("invalid doctor %q", doctor), nil)
	}
	return nil
}

// notify emails the appointment owner. Delivery failure never fails the
// mutation; it is logged to the audit trail.
func (s *Service) notify(ctx context.Context, apt *model.Appointment, event string, caller model.Caller) {
	if s.notifSvc == nil {
		return
	}
	if err := s.notifSvc.Send(ctx, apt.PatientID, event, apt); err != nil {
		s.auditor.Log(ctx, caller, "notification_failed", entityType, apt.ID, &audit.LogOptions{
			Changes: map[string]interface{}{"event": event, "error": err.Error()},
		})
	}
}

func (s *Service) count(operation, result string) {
	if s.metrics != nil {
		s.metrics.MutationsTotal.WithLabelValues(entityType, operation, result).Inc()
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.MutationLatency.WithLabelValues(entityType, operation).Observe(time.Since(start).Seconds())
	}
}

func outcome(err error) string {
	switch {
	case errors.IsNotFound(err):
		return "not_found"
	case errors.IsForbidden(err):
		return "denied"
	case errors.IsDomain(err):
		return "invalid_state"
	case errors.IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}
