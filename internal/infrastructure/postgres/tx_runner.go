package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, calls fn with every repository bound to it and
// commits; any error from fn rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos binds every repository to q (the pool for reads, a tx inside Run).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Inventory: NewInventoryRepository(q),
		Items:     NewItemRepository(q),
		Products:  NewProductRepository(q),
		Recipes:   NewRecipeRepository(q),
		Sites:     NewSiteRepository(q),
		Customers: NewCustomerRepository(q),
		Batches:   NewBatchRepository(q),
		Packaging: NewPackagingRepository(q),
		Kegs:      NewKegRepository(q),
		Invoices:  NewInvoiceRepository(q),
	}
}
