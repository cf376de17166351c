package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory statuses.
const (
	InventoryStatusReceived   = "Received"
	InventoryStatusStored     = "Stored"
	InventoryStatusProcessing = "Processing"
	InventoryStatusPackaged   = "Packaged"
)

// Inventory types with special validation rules.
const (
	InventoryTypeSpirits       = "Spirits"
	InventoryTypeOther         = "Other"
	InventoryTypeFinishedGoods = "Finished Goods"
	InventoryTypeMarketing     = "Marketing"
)

// Spirits sub-ledger accounts.
const (
	AccountStorage    = "Storage"
	AccountProcessing = "Processing"
	AccountProduction = "Production"
)

// InventoryItem is a quantity of one material at a site/location/account/status.
// Unique by (Identifier, Type, Account, SiteID, LocationID); Account is "" outside spirits.
// Batch ingredient debits and invoice lines address rows by Identifier.
type InventoryItem struct {
	ID               string
	Identifier       string
	ItemName         string
	Description      string
	Type             string
	Account          string
	SiteID           string
	LocationID       string
	Quantity         decimal.Decimal
	Unit             string
	Proof            *decimal.Decimal
	ProofGallons     *decimal.Decimal
	Cost             decimal.Decimal // weighted average unit cost
	TotalCost        decimal.Decimal
	Price            decimal.Decimal
	Status           string
	PONumber         string
	LotNumber        string
	Source           string
	ReceivedDate     time.Time
	IsKegDepositItem bool
	UpdatedAt        time.Time
}

// InventoryLoss is an immutable audit row for quantity written off.
// Identifier is an inventory identifier or, for batch volume losses, the batch id.
type InventoryLoss struct {
	ID           string
	Identifier   string
	QuantityLost decimal.Decimal
	Reason       string
	Date         time.Time
	SiteID       string
	LocationID   string
	UserID       string
}
