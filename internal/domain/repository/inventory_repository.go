package repository

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryFilter selects inventory rows. Empty strings and nil pointers do not filter.
// Identifier is always required.
type InventoryFilter struct {
	Identifier string
	Type       string
	Account    *string
	SiteID     string
	LocationID string
	Status     string
	// ForUpdate locks the selected rows until the transaction ends (SELECT ... FOR UPDATE).
	ForUpdate bool
}

// InventoryRepository is the persistence port for the inventory ledger.
type InventoryRepository interface {
	// Find returns matching rows ordered by received date then id (FIFO).
	Find(ctx context.Context, f InventoryFilter) ([]*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	// Decrement subtracts qty only if the row still holds at least qty.
	// It reports false when no row was changed.
	Decrement(ctx context.Context, id string, qty decimal.Decimal) (bool, error)
	Delete(ctx context.Context, id string) error

	CreateLoss(ctx context.Context, loss *entity.InventoryLoss) error
	ListLosses(ctx context.Context, identifier string) ([]*entity.InventoryLoss, error)
}
