package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one invoice line.
type InvoiceItemRequest struct {
	Identifier       string           `json:"identifier" validate:"required"`
	Description      string           `json:"description,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	HasKegDeposit    bool             `json:"hasKegDeposit,omitempty"`
	IsKegDepositItem bool             `json:"isKegDepositItem,omitempty"`
	KegCodes         []string         `json:"kegCodes,omitempty"`
}

// SaveInvoiceRequest body of PATCH /api/invoices/:id.
type SaveInvoiceRequest struct {
	Items []InvoiceItemRequest `json:"items" validate:"dive"`
}

// InvoiceResponse is an invoice with its lines.
type InvoiceResponse struct {
	InvoiceID       string               `json:"invoiceId"`
	CustomerID      string               `json:"customerId"`
	SiteID          string               `json:"siteId,omitempty"`
	Status          string               `json:"status"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	KegDepositTotal decimal.Decimal      `json:"kegDepositTotal"`
	Total           decimal.Decimal      `json:"total"`
	PostedDate      *time.Time           `json:"postedDate,omitempty"`
	Items           []InvoiceItemRequest `json:"items"`
}
