package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusDraft  = "Draft"
	InvoiceStatusPosted = "Posted"
)

// Invoice is a sales invoice. Posting it moves goods and kegs to the customer.
type Invoice struct {
	ID              string
	CustomerID      string
	SiteID          string // optional: restricts the inventory debited on posting
	Status          string
	Subtotal        decimal.Decimal
	KegDepositTotal decimal.Decimal
	Total           decimal.Decimal
	CreatedDate     time.Time
	PostedDate      *time.Time
	Items           []InvoiceItem
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	Identifier       string
	Description      string
	Quantity         decimal.Decimal
	Unit             string
	Price            *decimal.Decimal
	HasKegDeposit    bool
	IsKegDepositItem bool
	KegCodes         []string
}
