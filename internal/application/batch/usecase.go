package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/application/recipe"
	"github.com/jhoicas/brewery-api/internal/domain"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// Brew log actions.
const (
	LogCreated            = "Batch Created"
	LogIngredientAdded    = "Ingredient Added"
	LogIngredientsUpdated = "Ingredients Updated"
	LogIngredientsCleared = "Ingredients Cleared"
	LogStageChanged       = "Stage Changed"
	LogEquipmentChanged   = "Equipment Changed"
	LogVolumeAdjusted     = "Volume Adjusted"
	LogStatusChanged      = "Status Changed"
)

// UseCase manages the lifecycle of production batches.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	log      zerolog.Logger
	now      func() time.Time
}

func NewUseCase(txRunner ports.TxRunner, repos repository.Repos, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, log: log, now: time.Now}
}

// CreateBatch checks every recipe ingredient against Stored inventory at the
// batch's site, debits all of them and inserts the batch, in one transaction.
// Every shortfall is reported, joined with "; ".
func (uc *UseCase) CreateBatch(ctx context.Context, in dto.CreateBatchRequest) (*entity.Batch, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Volume != nil && !in.Volume.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("Volume must be greater than 0")
	}
	if in.Status != "" && in.Status != entity.BatchStatusInProgress {
		return nil, domain.Validation("Invalid status for a new batch: %s", in.Status)
	}
	now := uc.now()
	date := now
	if in.Date != "" {
		d, err := dto.ParseDate(in.Date)
		if err != nil {
			return nil, domain.Validation("Invalid date")
		}
		date = d
	}

	b := &entity.Batch{
		BatchID:     in.BatchID,
		ProductID:   in.ProductID,
		RecipeID:    in.RecipeID,
		SiteID:      in.SiteID,
		FermenterID: in.FermenterID,
		Status:      entity.BatchStatusInProgress,
		BatchType:   in.BatchType,
		Date:        date,
		Volume:      in.Volume,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Batches.GetByID(ctx, in.BatchID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("Batch %s already exists", in.BatchID)
		}
		product, err := r.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("Product %s not found", in.ProductID)
		}
		lines, err := recipe.Resolve(ctx, r.Recipes, in.RecipeID)
		if err != nil {
			return err
		}
		needs := recipe.Aggregate(lines)

		var shortfalls []string
		for _, need := range needs {
			available, _, err := inventory.Availability(ctx, r.Inventory, need.ItemName, in.SiteID, need.Unit)
			if err != nil {
				return err
			}
			if available.LessThan(need.Quantity) {
				shortfalls = append(shortfalls, inventory.ShortfallError(need.ItemName, available, need.Quantity, need.Unit).Error())
			}
		}
		if len(shortfalls) > 0 {
			return domain.Insufficient("%s", strings.Join(shortfalls, "; "))
		}
		for _, need := range needs {
			if err := inventory.Debit(ctx, r.Inventory, need.ItemName, in.SiteID, need.Quantity, need.Unit); err != nil {
				return err
			}
		}

		if err := r.Batches.Create(ctx, b); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("Batch %s already exists", in.BatchID)
			}
			return err
		}
		return uc.appendLog(ctx, r, b.BatchID, LogCreated, fmt.Sprintf("recipe %s, %d ingredients consumed", in.RecipeID, len(needs)))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", in.BatchID).Msg("batch creation rejected")
		return nil, err
	}
	uc.log.Info().Str("batch_id", b.BatchID).Str("site_id", b.SiteID).Msg("batch created")
	return b, nil
}

// GetBatch returns the batch with its derived ingredient list and brew log.
func (uc *UseCase) GetBatch(ctx context.Context, batchID string) (*dto.BatchResponse, error) {
	b, err := uc.repos.Batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("Batch %s not found", batchID)
	}
	return view(ctx, uc.repos, b)
}

// SetStatus patches status and/or volume. On a completed batch only a
// re-affirmation of the Completed status is accepted, and it changes nothing.
func (uc *UseCase) SetStatus(ctx context.Context, batchID string, in dto.PatchBatchRequest) error {
	if in.Status == nil && in.Volume == nil {
		return domain.Validation("Nothing to update: provide status or volume")
	}
	if in.Status != nil && *in.Status != entity.BatchStatusInProgress && *in.Status != entity.BatchStatusCompleted {
		return domain.Validation("Invalid status: %s. Must be one of In Progress, Completed", *in.Status)
	}
	if in.Volume != nil && in.Volume.LessThan(decimal.Zero) {
		return domain.Validation("Volume must be non-negative")
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := r.Batches.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound("Batch %s not found", batchID)
		}
		if b.IsCompleted() {
			if in.Status != nil && *in.Status == entity.BatchStatusCompleted && in.Volume == nil {
				return nil
			}
			return domain.ErrBatchCompleted
		}

		var changes []string
		if in.Status != nil && *in.Status != b.Status {
			changes = append(changes, fmt.Sprintf("status %s -> %s", b.Status, *in.Status))
			b.Status = *in.Status
			if b.Status == entity.BatchStatusCompleted {
				b.Stage = domainbatch.StageCompleted
			}
		}
		if in.Volume != nil {
			changes = append(changes, fmt.Sprintf("volume %s -> %s", volumeString(b.Volume), in.Volume.String()))
			v := *in.Volume
			b.Volume = &v
		}
		if len(changes) == 0 {
			return nil
		}
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		return uc.appendLog(ctx, r, batchID, LogStatusChanged, strings.Join(changes, ", "))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Msg("batch updated")
	return nil
}

// DeleteBatch removes a batch that is not completed and has no packaging.
func (uc *UseCase) DeleteBatch(ctx context.Context, batchID string) error {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		runs, err := r.Packaging.ListByBatch(ctx, b.BatchID)
		if err != nil {
			return err
		}
		if len(runs) > 0 {
			return domain.Conflict("Cannot delete batch %s: it has %d packaging records, delete them first", batchID, len(runs))
		}
		return r.Batches.Delete(ctx, batchID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Msg("batch deleted")
	return nil
}

// loadMutable locks the batch and rejects completed ones.
func loadMutable(ctx context.Context, r repository.Repos, batchID string) (*entity.Batch, error) {
	b, err := r.Batches.GetForUpdate(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("Batch %s not found", batchID)
	}
	if b.IsCompleted() {
		return nil, domain.ErrBatchCompleted
	}
	return b, nil
}

func (uc *UseCase) appendLog(ctx context.Context, r repository.Repos, batchID, action, detail string) error {
	return r.Batches.AppendLog(ctx, &entity.BatchLogEntry{
		ID:      uuid.New().String(),
		BatchID: batchID,
		At:      uc.now(),
		Action:  action,
		Detail:  detail,
	})
}

func volumeString(v *decimal.Decimal) string {
	if v == nil {
		return "unset"
	}
	return v.String()
}
