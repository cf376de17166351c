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

var _ repository.PackagingRepository = (*PackagingRepo)(nil)

// PackagingRepo persists packaging runs and their keg codes (pool or tx).
type PackagingRepo struct {
	q Querier
}

func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

// Create inserts the run and its ordered keg codes.
func (r *PackagingRepo) Create(ctx context.Context, p *entity.BatchPackaging) error {
	query := `
		INSERT INTO batch_packaging (id, batch_id, package_type, quantity, volume, location_id, site_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query,
		p.ID, p.BatchID, p.PackageType, p.Quantity, p.Volume, p.LocationID, p.SiteID, p.Date,
	); err != nil {
		return fmt.Errorf("insert batch packaging: %w", err)
	}
	for i, code := range p.KegCodes {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO package_keg_codes (packaging_id, position, keg_code) VALUES ($1, $2, $3)`,
			p.ID, i, code,
		); err != nil {
			return fmt.Errorf("insert package keg code: %w", err)
		}
	}
	return nil
}

// Get returns the run of the batch or (nil, nil).
func (r *PackagingRepo) Get(ctx context.Context, batchID, id string) (*entity.BatchPackaging, error) {
	query := `
		SELECT id, batch_id, package_type, quantity, volume, location_id, site_id, date
		FROM batch_packaging WHERE batch_id = $1 AND id::text = $2 FOR UPDATE`
	p, err := scanPackaging(r.q.QueryRow(ctx, query, batchID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch packaging: %w", err)
	}
	if p.KegCodes, err = r.kegCodes(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Update writes quantity and volume.
func (r *PackagingRepo) Update(ctx context.Context, p *entity.BatchPackaging) error {
	tag, err := r.q.Exec(ctx, `UPDATE batch_packaging SET quantity = $2, volume = $3 WHERE id = $1`, p.ID, p.Quantity, p.Volume)
	if err != nil {
		return fmt.Errorf("update batch packaging: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Packaging %s not found", p.ID)
	}
	return nil
}

// Delete removes the run; its keg codes cascade.
func (r *PackagingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batch_packaging WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete batch packaging: %w", err)
	}
	return nil
}

// ListByBatch returns the runs of the batch in creation order.
func (r *PackagingRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchPackaging, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, batch_id, package_type, quantity, volume, location_id, site_id, date
		FROM batch_packaging WHERE batch_id = $1 ORDER BY date, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch packaging: %w", err)
	}
	var out []*entity.BatchPackaging
	for rows.Next() {
		p, err := scanPackaging(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan batch packaging: %w", err)
		}
		out = append(out, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Keg codes are read after the cursor is closed: a tx runs one query at a time.
	for _, p := range out {
		if p.KegCodes, err = r.kegCodes(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PackagingRepo) kegCodes(ctx context.Context, packagingID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT keg_code FROM package_keg_codes WHERE packaging_id = $1 ORDER BY position`, packagingID)
	if err != nil {
		return nil, fmt.Errorf("list package keg codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan package keg codes: %w", err)
	}
	return codes, nil
}

func scanPackaging(row pgx.Row) (*entity.BatchPackaging, error) {
	var p entity.BatchPackaging
	if err := row.Scan(&p.ID, &p.BatchID, &p.PackageType, &p.Quantity, &p.Volume, &p.LocationID, &p.SiteID, &p.Date); err != nil {
		return nil, err
	}
	return &p, nil
}
