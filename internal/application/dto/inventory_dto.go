package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveItemRequest is one record of POST /api/inventory/receive.
type ReceiveItemRequest struct {
	Identifier       string           `json:"identifier" validate:"required"`
	Item             string           `json:"item" validate:"required"`
	Description      string           `json:"description,omitempty"`
	Type             string           `json:"type" validate:"required"`
	Account          string           `json:"account,omitempty"`
	Quantity         *decimal.Decimal `json:"quantity" validate:"required"`
	Unit             string           `json:"unit" validate:"required"`
	Proof            *decimal.Decimal `json:"proof,omitempty"`
	Cost             *decimal.Decimal `json:"cost,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	ReceivedDate     string           `json:"receivedDate" validate:"required"`
	Status           string           `json:"status" validate:"required,oneof=Received Stored Processing Packaged"`
	SiteID           string           `json:"siteId" validate:"required"`
	LocationID       string           `json:"locationId" validate:"required"`
	PONumber         string           `json:"poNumber,omitempty"`
	LotNumber        string           `json:"lotNumber,omitempty"`
	Source           string           `json:"source,omitempty"`
	IsKegDepositItem bool             `json:"isKegDepositItem,omitempty"`
}

// RecordLossRequest body of POST /api/inventory/loss.
type RecordLossRequest struct {
	Identifier   string           `json:"identifier" validate:"required"`
	QuantityLost *decimal.Decimal `json:"quantityLost" validate:"required"`
	Reason       string           `json:"reason" validate:"required"`
	Date         string           `json:"date,omitempty"`
	SiteID       string           `json:"siteId" validate:"required"`
	LocationID   string           `json:"locationId,omitempty"`
}

// InventoryItemResponse is one inventory row.
type InventoryItemResponse struct {
	ID               string           `json:"id"`
	Identifier       string           `json:"identifier"`
	Item             string           `json:"item"`
	Description      string           `json:"description,omitempty"`
	Type             string           `json:"type"`
	Account          string           `json:"account,omitempty"`
	SiteID           string           `json:"siteId"`
	LocationID       string           `json:"locationId"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit"`
	Proof            *decimal.Decimal `json:"proof,omitempty"`
	ProofGallons     *decimal.Decimal `json:"proofGallons,omitempty"`
	Cost             decimal.Decimal  `json:"cost"`
	TotalCost        decimal.Decimal  `json:"totalCost"`
	Price            decimal.Decimal  `json:"price"`
	Status           string           `json:"status"`
	PONumber         string           `json:"poNumber,omitempty"`
	LotNumber        string           `json:"lotNumber,omitempty"`
	ReceivedDate     time.Time        `json:"receivedDate"`
	IsKegDepositItem bool             `json:"isKegDepositItem"`
}

// InventoryLossResponse is one loss audit row.
type InventoryLossResponse struct {
	ID           string          `json:"id"`
	Identifier   string          `json:"identifier"`
	QuantityLost decimal.Decimal `json:"quantityLost"`
	Reason       string          `json:"reason"`
	Date         time.Time       `json:"date"`
	SiteID       string          `json:"siteId"`
	LocationID   string          `json:"locationId,omitempty"`
	UserID       string          `json:"userId,omitempty"`
}
