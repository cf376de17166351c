package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

var _ repository.KegRepository = (*KegRepo)(nil)

// KegRepo persists kegs and their transaction log (pool or tx).
type KegRepo struct {
	q Querier
}

func NewKegRepository(q Querier) *KegRepo {
	return &KegRepo{q: q}
}

// Create inserts a keg; an existing code returns domain.ErrDuplicate.
func (r *KegRepo) Create(ctx context.Context, k *entity.Keg) error {
	query := `
		INSERT INTO kegs (code, status, product_id, location_id, customer_id, packaging_type, last_scanned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, k.Code, k.Status, k.ProductID, k.LocationID, k.CustomerID, k.PackagingType, k.LastScanned)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Keg %s already exists", k.Code)
		}
		return fmt.Errorf("insert keg: %w", err)
	}
	return nil
}

func (r *KegRepo) GetByCode(ctx context.Context, code string) (*entity.Keg, error) {
	return r.get(ctx, code, false)
}

func (r *KegRepo) GetForUpdate(ctx context.Context, code string) (*entity.Keg, error) {
	return r.get(ctx, code, true)
}

func (r *KegRepo) get(ctx context.Context, code string, lock bool) (*entity.Keg, error) {
	query := `
		SELECT code, status, product_id, location_id, customer_id, packaging_type, last_scanned
		FROM kegs WHERE code = $1` + forUpdate(lock)
	var k entity.Keg
	err := r.q.QueryRow(ctx, query, code).Scan(
		&k.Code, &k.Status, &k.ProductID, &k.LocationID, &k.CustomerID, &k.PackagingType, &k.LastScanned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get keg: %w", err)
	}
	return &k, nil
}

func (r *KegRepo) Update(ctx context.Context, k *entity.Keg) error {
	query := `
		UPDATE kegs
		SET status         = $2,
		    product_id     = $3,
		    location_id    = $4,
		    customer_id    = $5,
		    packaging_type = $6,
		    last_scanned   = $7
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, query, k.Code, k.Status, k.ProductID, k.LocationID, k.CustomerID, k.PackagingType, k.LastScanned)
	if err != nil {
		return fmt.Errorf("update keg: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Keg %s not found", k.Code)
	}
	return nil
}

// AppendTransaction appends to the keg history. Rows are never updated.
func (r *KegRepo) AppendTransaction(ctx context.Context, t *entity.KegTransaction) error {
	query := `
		INSERT INTO keg_transactions (id, keg_code, action, product_id, batch_id, invoice_id, date, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.KegCode, t.Action, t.ProductID, t.BatchID, t.InvoiceID, t.Date, t.Location); err != nil {
		return fmt.Errorf("insert keg transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the keg history, oldest first.
func (r *KegRepo) ListTransactions(ctx context.Context, code string) ([]*entity.KegTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, keg_code, action, product_id, batch_id, invoice_id, date, location
		FROM keg_transactions WHERE keg_code = $1 ORDER BY date, id`, code)
	if err != nil {
		return nil, fmt.Errorf("list keg transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.KegTransaction
	for rows.Next() {
		var t entity.KegTransaction
		if err := rows.Scan(&t.ID, &t.KegCode, &t.Action, &t.ProductID, &t.BatchID, &t.InvoiceID, &t.Date, &t.Location); err != nil {
			return nil, fmt.Errorf("scan keg transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
