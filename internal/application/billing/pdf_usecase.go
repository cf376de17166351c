package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// PDFUseCase renders posted invoices. Drafts have no printable form.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF returns the PDF bytes and a download file name.
//
// Errors:
//   - domain.ErrNotFound      when the invoice or its customer does not exist.
//   - domain.ErrInvalidInput  when the invoice is still a draft.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.NotFound("Invoice %s not found", invoiceID)
	}
	if inv.Status != entity.InvoiceStatusPosted {
		return nil, "", domain.Validation("Invoice %s is %s, only posted invoices can be printed", invoiceID, inv.Status)
	}

	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load customer: %w", err)
	}
	if customer == nil {
		return nil, "", domain.NotFound("Customer %s not found", inv.CustomerID)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generate: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.ID), nil
}
