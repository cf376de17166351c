package keg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/packaging"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// UseCase registers kegs and applies manual administrative updates.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
	now      func() time.Time
}

func NewUseCase(txRunner ports.TxRunner, repos repository.Repos, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, log: log, now: time.Now}
}

// Register creates a keg. The status defaults to Empty.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterKegRequest) (*entity.Keg, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	if !packaging.ValidKegCode(code) {
		return nil, domain.Validation("Invalid keg code %s: only A-Z, 0-9 and - are allowed", in.Code)
	}
	status := in.Status
	if status == "" {
		status = entity.KegStatusEmpty
	}
	now := uc.now()
	k := &entity.Keg{
		Code:          code,
		Status:        status,
		ProductID:     in.ProductID,
		LocationID:    in.LocationID,
		PackagingType: in.PackagingType,
		LastScanned:   &now,
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Kegs.Create(ctx, k); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("Keg %s already exists", code)
			}
			return err
		}
		return r.Kegs.AppendTransaction(ctx, &entity.KegTransaction{
			ID:        uuid.New().String(),
			KegCode:   code,
			Action:    entity.KegActionRegistered,
			ProductID: k.ProductID,
			Date:      now,
			Location:  k.LocationID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("keg", code).Str("status", status).Msg("keg registered")
	return k, nil
}

// Update applies a manual change. Any status may move to any other status.
func (uc *UseCase) Update(ctx context.Context, code string, in dto.UpdateKegRequest) (*entity.Keg, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Status == nil && in.LocationID == nil && in.CustomerID == nil && in.ProductID == nil {
		return nil, domain.Validation("Nothing to update: provide status, locationId, customerId or productId")
	}
	var out *entity.Keg
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		k, err := lock(ctx, r.Kegs, code)
		if err != nil {
			return err
		}
		if in.CustomerID != nil && *in.CustomerID != "" {
			c, err := r.Customers.GetByID(ctx, *in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.NotFound("Customer %s not found", *in.CustomerID)
			}
		}
		if in.Status != nil {
			k.Status = *in.Status
		}
		if in.LocationID != nil {
			k.LocationID = *in.LocationID
		}
		if in.CustomerID != nil {
			k.CustomerID = *in.CustomerID
		}
		if in.ProductID != nil {
			k.ProductID = *in.ProductID
		}
		now := uc.now()
		k.LastScanned = &now
		if err := r.Kegs.Update(ctx, k); err != nil {
			return err
		}
		where := k.LocationID
		if k.CustomerID != "" {
			where = k.CustomerID
		}
		out = k
		return r.Kegs.AppendTransaction(ctx, &entity.KegTransaction{
			ID:        uuid.New().String(),
			KegCode:   code,
			Action:    entity.KegActionUpdated,
			ProductID: k.ProductID,
			Date:      now,
			Location:  where,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("keg", code).Str("status", out.Status).Msg("keg updated")
	return out, nil
}

// Get returns a keg by code.
func (uc *UseCase) Get(ctx context.Context, code string) (*entity.Keg, error) {
	k, err := uc.repos.Kegs.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, domain.NotFound("Keg %s not found", code)
	}
	return k, nil
}

// Transactions returns the full history of a keg, oldest first.
func (uc *UseCase) Transactions(ctx context.Context, code string) ([]*entity.KegTransaction, error) {
	if _, err := uc.Get(ctx, code); err != nil {
		return nil, err
	}
	return uc.repos.Kegs.ListTransactions(ctx, code)
}
