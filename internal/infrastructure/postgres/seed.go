package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed seed.sql
var demoSeed string

// SeedDemo loads the demo catalog, opening stock, kegs and a draft invoice.
// The ledger ports never create catalog rows, so a fresh database needs this
// (or equivalent data) before batches can be brewed.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, demoSeed); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}
