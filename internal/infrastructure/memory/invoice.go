package memory

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

type invoiceRepo struct {
	st func() *state
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.st().invoices[id]
	if !ok {
		return nil, nil
	}
	c := cloneInvoice(inv)
	return &c, nil
}

func (r *invoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

// Update writes the header and keeps the stored items.
func (r *invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	st := r.st()
	cur, ok := st.invoices[inv.ID]
	if !ok {
		return domain.NotFound("Invoice %s not found", inv.ID)
	}
	next := cloneInvoice(*inv)
	next.Items = cur.Items
	st.invoices[inv.ID] = next
	return nil
}

func (r *invoiceRepo) ReplaceItems(_ context.Context, invoiceID string, items []entity.InvoiceItem) error {
	st := r.st()
	cur, ok := st.invoices[invoiceID]
	if !ok {
		return domain.NotFound("Invoice %s not found", invoiceID)
	}
	cur.Items = cloneInvoiceItems(items)
	st.invoices[invoiceID] = cur
	return nil
}
