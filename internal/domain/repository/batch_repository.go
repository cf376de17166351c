package repository

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// BatchRepository persists batches, their ingredient overrides and brew log.
type BatchRepository interface {
	// Create inserts the batch and its AdditionalIngredients. Duplicate ids return domain.ErrDuplicate.
	Create(ctx context.Context, batch *entity.Batch) error
	// GetByID loads the batch with its overrides; (nil, nil) when absent.
	GetByID(ctx context.Context, batchID string) (*entity.Batch, error)
	// GetForUpdate is GetByID with the batch row locked.
	GetForUpdate(ctx context.Context, batchID string) (*entity.Batch, error)
	// Update writes the scalar fields (status, stage, equipment, volume).
	Update(ctx context.Context, batch *entity.Batch) error
	ReplaceIngredients(ctx context.Context, batchID string, ingredients []entity.BatchIngredient) error
	Delete(ctx context.Context, batchID string) error

	AppendLog(ctx context.Context, entry *entity.BatchLogEntry) error
	ListLog(ctx context.Context, batchID string) ([]*entity.BatchLogEntry, error)
}

// PackagingRepository persists packaging runs and their keg codes.
type PackagingRepository interface {
	Create(ctx context.Context, p *entity.BatchPackaging) error
	// Get returns the packaging row of the batch; (nil, nil) when absent.
	Get(ctx context.Context, batchID, id string) (*entity.BatchPackaging, error)
	Update(ctx context.Context, p *entity.BatchPackaging) error
	Delete(ctx context.Context, id string) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchPackaging, error)
}
