package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/infrastructure/pdf"
)

func TestGenerateInvoicePDF(t *testing.T) {
	price := decimal.RequireFromString("150.00")
	posted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID:              "INV-1001",
		CustomerID:      "CUST-1",
		Status:          entity.InvoiceStatusPosted,
		Subtotal:        decimal.NewFromInt(300),
		KegDepositTotal: decimal.NewFromInt(60),
		Total:           decimal.NewFromInt(360),
		PostedDate:      &posted,
		Items: []entity.InvoiceItem{{
			Identifier:    "Pale Ale 1/2 Keg",
			Quantity:      decimal.NewFromInt(2),
			Price:         &price,
			HasKegDeposit: true,
			KegCodes:      []string{"K-0001", "K-0002"},
		}},
	}

	out, err := pdf.NewMarotoPDFGenerator("Test Brewing Co.").
		GenerateInvoicePDF(context.Background(), inv, &entity.Customer{ID: "CUST-1", Name: "Corner Tap House"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
