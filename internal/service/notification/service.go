package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/email"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository"
)

// Notification events
const (
	EventAppointmentCreated   = "appointment_created"
	EventAppointmentCancelled = "appointment_cancelled"
)

type Service interface {
	Send(ctx context.Context, patientID uuid.UUID, event string, payload interface{}) error
}

type service struct {
	patients repository.PatientRepository
	emailSvc email.Service
}

func NewService(patients repository.PatientRepository, emailSvc email.Service) Service {
	return &service{
		patients: patients,
		emailSvc: emailSvc,
	}
}

// Send resolves the patient and emails an event summary.
func (s *service) Send(ctx context.Context, patientID uuid.UUID, event string, payload interface{}) error {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to resolve notification recipient: %w", err)
	}

	subject, body := render(patient, event, payload)
	if err := s.emailSvc.Send(ctx, patient.Email, subject, body); err != nil {
		return fmt.Errorf("failed to deliver %s notification: %w", event, err)
	}
	return nil
}

func render(patient *model.Patient, event string, payload interface{}) (subject, body string) {
	switch event {
	case EventAppointmentCreated:
		subject = "Your appointment is scheduled"
	case EventAppointmentCancelled:
		subject = "Your appointment was cancelled"
	default:
		subject = "Update from your clinic"
	}

	body = fmt.Sprintf("Hello %s,\n\n", patient.Name)
	if apt, ok := payload.(*model.Appointment); ok {
		body += fmt.Sprintf("Appointment with %s (%s) on %s at %s is now %s.\n",
			apt.Doctor, apt.Specialty, apt.Date.Format("2006-01-02"), apt.TimeSlot, apt.Status)
	}
	return subject, body
}
