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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo persists batches, their ingredient overrides and brew log (pool or tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository builds the adapter. Pass a pool or a tx.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserts the batch and its overrides.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (batch_id, product_id, recipe_id, site_id, fermenter_id, equipment_id, status, stage,
		                     batch_type, date, volume, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		b.BatchID, b.ProductID, b.RecipeID, b.SiteID, b.FermenterID, b.EquipmentID, b.Status, nullIfEmpty(b.Stage),
		b.BatchType, b.Date, b.Volume, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Batch %s already exists", b.BatchID)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return r.insertIngredients(ctx, b.BatchID, b.AdditionalIngredients)
}

func (r *BatchRepo) GetByID(ctx context.Context, batchID string) (*entity.Batch, error) {
	return r.get(ctx, batchID, false)
}

// GetForUpdate loads the batch and locks its row.
func (r *BatchRepo) GetForUpdate(ctx context.Context, batchID string) (*entity.Batch, error) {
	return r.get(ctx, batchID, true)
}

func (r *BatchRepo) get(ctx context.Context, batchID string, lock bool) (*entity.Batch, error) {
	query := `
		SELECT batch_id, product_id, recipe_id, site_id, fermenter_id, equipment_id, status, stage,
		       batch_type, date, volume, created_at, updated_at
		FROM batches WHERE batch_id = $1` + forUpdate(lock)
	var b entity.Batch
	var stage *string
	err := r.q.QueryRow(ctx, query, batchID).Scan(
		&b.BatchID, &b.ProductID, &b.RecipeID, &b.SiteID, &b.FermenterID, &b.EquipmentID, &b.Status, &stage,
		&b.BatchType, &b.Date, &b.Volume, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if stage != nil {
		b.Stage = *stage
	}

	rows, err := r.q.Query(ctx, `
		SELECT item_name, quantity, unit, is_recipe, excluded, proof, proof_gallons
		FROM batch_ingredient_overrides WHERE batch_id = $1 ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.BatchIngredient
		if err := rows.Scan(&ing.ItemName, &ing.Quantity, &ing.Unit, &ing.IsRecipe, &ing.Excluded, &ing.Proof, &ing.ProofGallons); err != nil {
			return nil, fmt.Errorf("scan batch ingredient: %w", err)
		}
		b.AdditionalIngredients = append(b.AdditionalIngredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update writes the scalar columns.
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches
		SET status       = $2,
		    stage        = $3,
		    equipment_id = $4,
		    volume       = $5,
		    updated_at   = $6
		WHERE batch_id = $1`
	tag, err := r.q.Exec(ctx, query, b.BatchID, b.Status, nullIfEmpty(b.Stage), b.EquipmentID, b.Volume, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Batch %s not found", b.BatchID)
	}
	return nil
}

// ReplaceIngredients rewrites the ordered override rows of the batch.
func (r *BatchRepo) ReplaceIngredients(ctx context.Context, batchID string, ingredients []entity.BatchIngredient) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batch_ingredient_overrides WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("clear batch ingredients: %w", err)
	}
	return r.insertIngredients(ctx, batchID, ingredients)
}

func (r *BatchRepo) insertIngredients(ctx context.Context, batchID string, ingredients []entity.BatchIngredient) error {
	query := `
		INSERT INTO batch_ingredient_overrides (batch_id, position, item_name, quantity, unit, is_recipe, excluded, proof, proof_gallons)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i, ing := range ingredients {
		if _, err := r.q.Exec(ctx, query,
			batchID, i, ing.ItemName, ing.Quantity, ing.Unit, ing.IsRecipe, ing.Excluded, ing.Proof, ing.ProofGallons,
		); err != nil {
			return fmt.Errorf("insert batch ingredient: %w", err)
		}
	}
	return nil
}

// Delete removes the batch; overrides and log entries cascade.
func (r *BatchRepo) Delete(ctx context.Context, batchID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM batches WHERE batch_id = $1`, batchID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// AppendLog appends a brew log entry.
func (r *BatchRepo) AppendLog(ctx context.Context, e *entity.BatchLogEntry) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO batch_log_entries (id, batch_id, at, action, detail) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.BatchID, e.At, e.Action, e.Detail)
	if err != nil {
		return fmt.Errorf("insert batch log entry: %w", err)
	}
	return nil
}

// ListLog returns the brew log, oldest first.
func (r *BatchRepo) ListLog(ctx context.Context, batchID string) ([]*entity.BatchLogEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, batch_id, at, action, detail FROM batch_log_entries WHERE batch_id = $1 ORDER BY at, id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch log: %w", err)
	}
	defer rows.Close()

	var out []*entity.BatchLogEntry
	for rows.Next() {
		var e entity.BatchLogEntry
		if err := rows.Scan(&e.ID, &e.BatchID, &e.At, &e.Action, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan batch log entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
