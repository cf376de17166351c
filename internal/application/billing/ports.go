package billing

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// InvoicePDFGenerator renders a posted invoice.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
