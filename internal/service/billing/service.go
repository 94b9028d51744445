package billing

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

const entityType = "invoice"

// DocumentGenerator renders an invoice into a downloadable document.
// Billing documents are produced by an external collaborator; this service
// ships a plain-text fallback.
type DocumentGenerator interface {
	Generate(ctx context.Context, invoice *model.Invoice) ([]byte, error)
}

// Service exposes read access to invoices. Invoice status is owned by the
// external billing system and has no mutation path here.
type Service struct {
	repo    repository.InvoiceRepository
	policy  *access.Policy
	auditor *audit.Service
	docGen  DocumentGenerator
}

func NewService(repo repository.InvoiceRepository, policy *access.Policy, auditor *audit.Service, docGen DocumentGenerator) *Service {
	if docGen == nil {
		docGen = textGenerator{}
	}
	return &Service{
		repo:    repo,
		policy:  policy,
		auditor: auditor,
		docGen:  docGen,
	}
}

// ListInvoices returns the invoices visible to the caller, newest first.
func (s *Service) ListInvoices(ctx context.Context, caller model.Caller) ([]*model.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return access.FilterVisible(s.policy, entityType, caller, invoices), nil
}

func (s *Service) GetInvoice(ctx context.Context, caller model.Caller, id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if visible := access.FilterVisible(s.policy, entityType, caller, []*model.Invoice{invoice}); len(visible) == 0 {
		return nil, errors.NewNotFound(entityType, nil)
	}

	s.auditor.Log(ctx, caller, "read", entityType, id, nil)
	return invoice, nil
}

// GenerateDocument renders a downloadable copy of an invoice the caller may
// see.
func (s *Service) GenerateDocument(ctx context.Context, caller model.Caller, id uuid.UUID) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.docGen.Generate(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice document: %w", err)
	}

	s.auditor.Log(ctx, caller, "download", entityType, id, nil)
	return doc, nil
}

type textGenerator struct{}

func (textGenerator) Generate(_ context.Context, inv *model.Invoice) ([]byte, error) {
	doc := fmt.Sprintf(
		"Invoice %s\nIssued: %s\nDue: %s\nAmount: %d.%02d\nStatus: %s\n\n%s\n",
		inv.Number,
		inv.IssueDate.Format("2006-01-02"),
		inv.DueDate.Format("2006-01-02"),
		inv.AmountCents/100, inv.AmountCents%100,
		inv.Status,
		inv.Description,
	)
	return []byte(doc), nil
}
