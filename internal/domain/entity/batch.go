package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch statuses.
const (
	BatchStatusInProgress = "In Progress"
	BatchStatusCompleted  = "Completed"
)

// Batch is a production run. Once Status is Completed it is immutable.
type Batch struct {
	BatchID     string
	ProductID   string
	RecipeID    string
	SiteID      string
	FermenterID string
	EquipmentID string
	Status      string
	Stage       string // "" until the first stage is set
	BatchType   string
	Date        time.Time
	Volume      *decimal.Decimal // barrels; nil until known

	// AdditionalIngredients are ordered overrides/additions to the recipe.
	AdditionalIngredients []BatchIngredient
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsCompleted reports whether the batch is in its terminal status.
func (b *Batch) IsCompleted() bool {
	return b.Status == BatchStatusCompleted
}

// BatchIngredient is one row of batch_ingredient_overrides. An Excluded row
// is a tombstone hiding the recipe ingredient it matches.
type BatchIngredient struct {
	ItemName     string
	Quantity     *decimal.Decimal // nil only on exclude-only tombstones
	Unit         string
	IsRecipe     bool
	Excluded     bool
	Proof        *decimal.Decimal
	ProofGallons *decimal.Decimal
}

// QuantityOrZero returns the quantity or zero when unset.
func (i BatchIngredient) QuantityOrZero() decimal.Decimal {
	if i.Quantity == nil {
		return decimal.Zero
	}
	return *i.Quantity
}

// BatchLogEntry is one append-only brew log line.
type BatchLogEntry struct {
	ID      string
	BatchID string
	At      time.Time
	Action  string
	Detail  string
}

// BatchPackaging is one packaging run against a batch.
type BatchPackaging struct {
	ID          string
	BatchID     string
	PackageType string
	Quantity    int64
	Volume      decimal.Decimal
	LocationID  string
	SiteID      string
	Date        time.Time
	KegCodes    []string // only for keg package types
}
