package repository

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

// KegRepository persists kegs and their append-only transaction log.
type KegRepository interface {
	// Create returns domain.ErrDuplicate when the code exists.
	Create(ctx context.Context, keg *entity.Keg) error
	GetByCode(ctx context.Context, code string) (*entity.Keg, error)
	GetForUpdate(ctx context.Context, code string) (*entity.Keg, error)
	Update(ctx context.Context, keg *entity.Keg) error

	AppendTransaction(ctx context.Context, tx *entity.KegTransaction) error
	ListTransactions(ctx context.Context, code string) ([]*entity.KegTransaction, error)
}
