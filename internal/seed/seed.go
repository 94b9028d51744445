// Package seed loads the demo dataset the portal ships with: a staff
// account, a handful of patients and their appointment, billing and
// clinical history, mirroring the data the original portal was built
// around.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository"
)

type Stores struct {
	Patients     repository.PatientRepository
	Appointments repository.AppointmentRepository
	Invoices     repository.InvoiceRepository
	Records      repository.MedicalRecordRepository
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Load populates empty stores with the demo dataset.
func Load(ctx context.Context, s Stores) error {
	admin := &model.Patient{
		Name:   "Clinic Staff",
		Email:  "staff@vidamais.example",
		Role:   model.RoleAdmin,
		Status: model.PatientStatusActive,
	}
	alfa := &model.Patient{
		Name:    "Paciente Alfa",
		Email:   "alfa@example.com",
		Phone:   "+55 11 91234-0001",
		Address: "Rua das Flores 10, São Paulo",
		Role:    model.RoleClient,
		Status:  model.PatientStatusActive,
	}
	beta := &model.Patient{
		Name:   "Paciente Beta",
		Email:  "beta@example.com",
		Phone:  "+55 11 91234-0002",
		Role:   model.RoleClient,
		Status: model.PatientStatusActive,
	}
	gamma := &model.Patient{
		Name:   "Paciente Gamma",
		Email:  "gamma@example.com",
		Role:   model.RoleClient,
		Status: model.PatientStatusActive,
	}

	for _, p := range []*model.Patient{admin, alfa, beta, gamma} {
		if err := s.Patients.Insert(ctx, p); err != nil {
			return fmt.Errorf("failed to seed patient %s: %w", p.Email, err)
		}
	}

	appointments := []*model.Appointment{
		{PatientID: alfa.ID, Date: date(2024, time.October, 15), TimeSlot: "16:00", Specialty: "general", Doctor: "Dr. Silva", Status: model.AppointmentStatusCancelled},
		{PatientID: alfa.ID, Date: date(2024, time.November, 20), TimeSlot: "09:00", Specialty: "orthopedics", Doctor: "Dr. Mendes", Notes: "Knee X-ray follow-up.", Status: model.AppointmentStatusCompleted},
		{PatientID: alfa.ID, Date: date(2024, time.December, 25), TimeSlot: "10:00", Specialty: "general", Doctor: "Dr. Silva", Notes: "History of high blood pressure.", Status: model.AppointmentStatusConfirmed},
		{PatientID: beta.ID, Date: date(2025, time.January, 10), TimeSlot: "14:00", Specialty: "cardiology", Doctor: "Dra. Costa", Status: model.AppointmentStatusScheduled},
		{PatientID: gamma.ID, Date: date(2025, time.February, 1), TimeSlot: "11:00", Specialty: "dermatology", Doctor: "Dra. Rocha", Notes: "Skin spot check.", Status: model.AppointmentStatusScheduled},
	}
	for _, apt := range appointments {
		if err := s.Appointments.Insert(ctx, apt); err != nil {
			return fmt.Errorf("failed to seed appointment: %w", err)
		}
	}

	invoices := []*model.Invoice{
		{PatientID: alfa.ID, Number: "INV-2023-0003", IssueDate: date(2023, time.September, 10), DueDate: date(2023, time.September, 25), AmountCents: 8000, Status: model.InvoiceStatusOverdue, Description: "Follow-up consultation"},
		{PatientID: alfa.ID, Number: "INV-2024-0001", IssueDate: date(2024, time.November, 15), DueDate: date(2024, time.December, 1), AmountCents: 15000, Status: model.InvoiceStatusPaid, Description: "General consultation"},
		{PatientID: alfa.ID, Number: "INV-2024-0002", IssueDate: date(2024, time.December, 1), DueDate: date(2024, time.December, 15), AmountCents: 25000, Status: model.InvoiceStatusPending, Description: "Laboratory tests"},
		{PatientID: beta.ID, Number: "INV-2023-0005", IssueDate: date(2023, time.May, 12), DueDate: date(2023, time.May, 27), AmountCents: 12000, Status: model.InvoiceStatusPaid, Description: "Cardiology consultation"},
		{PatientID: gamma.ID, Number: "INV-2024-0006", IssueDate: date(2024, time.November, 25), DueDate: date(2024, time.December, 10), AmountCents: 18000, Status: model.InvoiceStatusPending, Description: "Physiotherapy session 1"},
	}
	for _, inv := range invoices {
		if err := s.Invoices.Insert(ctx, inv); err != nil {
			return fmt.Errorf("failed to seed invoice %s: %w", inv.Number, err)
		}
	}

	records := []*model.MedicalRecord{
		{PatientID: alfa.ID, Date: date(2023, time.March, 22), Type: "Dermatology consultation", Author: "Dra. Rocha", Summary: "Routine skin assessment, no abnormality detected. SPF 50 sunscreen recommended."},
		{PatientID: alfa.ID, Date: date(2023, time.August, 1), Type: "Vaccination", Author: "Nurse Modelo", Summary: "Influenza vaccine and tetanus booster applied."},
		{PatientID: alfa.ID, Date: date(2023, time.November, 10), Type: "Orthopedic consultation", Author: "Dr. Mendes", Summary: "Right knee pain after exercise. Mild sprain suspected; X-ray requested, rest recommended."},
		{PatientID: alfa.ID, Date: date(2023, time.November, 12), Type: "Right knee X-ray", Author: "VidaMais Imaging", Summary: "Bone structures intact, no fracture or dislocation. Mild soft tissue swelling."},
		{PatientID: alfa.ID, Date: date(2024, time.May, 20), Type: "Blood test", Author: "VidaMais Laboratory", Summary: "Full blood count within normal parameters. Hemoglobin 14.5 g/dL."},
		{PatientID: alfa.ID, Date: date(2024, time.October, 15), Type: "General consultation", Author: "Dr. Silva", Summary: "Annual check-up, good overall state. Blood pressure 120/80 mmHg. Routine tests requested."},
		{PatientID: beta.ID, Date: date(2024, time.June, 3), Type: "Cardiology consultation", Author: "Dra. Costa", Summary: "Resting ECG normal. Stress test scheduled."},
	}
	for _, rec := range records {
		if err := s.Records.Insert(ctx, rec); err != nil {
			return fmt.Errorf("failed to seed medical record: %w", err)
		}
	}

	return nil
}
