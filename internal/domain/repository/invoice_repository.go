package repository

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// InvoiceRepository persists invoices and their line items.
type InvoiceRepository interface {
	// GetByID loads the invoice with its items; (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// Update writes the header (status, totals, posted date).
	Update(ctx context.Context, invoice *entity.Invoice) error
	ReplaceItems(ctx context.Context, invoiceID string, items []entity.InvoiceItem) error
}
