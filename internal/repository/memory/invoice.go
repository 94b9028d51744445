package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
)

type InvoiceRepository struct {
	records *collection[model.Invoice, *model.Invoice]
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		records: newCollection[model.Invoice, *model.Invoice]("invoice"),
	}
}

func (r *InvoiceRepository) Insert(ctx context.Context, invoice *model.Invoice) error {
	return r.records.insert(invoice)
}

func (r *InvoiceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return r.records.get(id)
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*model.Invoice, error) {
	return r.records.list(), nil
}
