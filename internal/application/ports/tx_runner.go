package ports

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction with every repository bound
// to it. A non-nil error from fn rolls the whole transaction back.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}
