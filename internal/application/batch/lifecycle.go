package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/domain"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// AdvanceStage moves the batch strictly forward to in.Stage. Brewing,
// Fermentation and Filtering/Carbonating need equipment of the batch's site.
func (uc *UseCase) AdvanceStage(ctx context.Context, batchID string, in dto.EquipmentRequest) error {
	if in.Stage == "" {
		return domain.Validation("Missing required fields: stage")
	}
	var from string
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		if err := domainbatch.CheckTransition(b.Stage, in.Stage); err != nil {
			return err
		}
		if domainbatch.RequiresEquipment(in.Stage) && in.EquipmentID == "" {
			return domain.Validation("Equipment is required for stage %s", in.Stage)
		}
		if in.EquipmentID != "" {
			if err := checkEquipment(ctx, r, b.SiteID, in.EquipmentID); err != nil {
				return err
			}
			b.EquipmentID = in.EquipmentID
		}
		from = b.Stage
		b.Stage = in.Stage
		if b.Stage == domainbatch.StageCompleted {
			b.Status = entity.BatchStatusCompleted
		}
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		detail := fmt.Sprintf("%s -> %s", orNone(from), in.Stage)
		if in.EquipmentID != "" {
			detail += " on " + in.EquipmentID
		}
		return uc.appendLog(ctx, r, batchID, LogStageChanged, detail)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("stage", in.Stage).Msg("stage change rejected")
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Str("from", orNone(from)).Str("to", in.Stage).Msg("batch stage advanced")
	return nil
}

// SetEquipment reassigns the vessel without touching the stage.
func (uc *UseCase) SetEquipment(ctx context.Context, batchID, equipmentID string) error {
	if equipmentID == "" {
		return domain.Validation("Missing required fields: equipmentId")
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		if err := checkEquipment(ctx, r, b.SiteID, equipmentID); err != nil {
			return err
		}
		prev := b.EquipmentID
		b.EquipmentID = equipmentID
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		return uc.appendLog(ctx, r, batchID, LogEquipmentChanged, fmt.Sprintf("%s -> %s", orNone(prev), equipmentID))
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Str("equipment_id", equipmentID).Msg("batch equipment changed")
	return nil
}

// AdjustVolume sets the batch volume. A decrease is written to the loss audit
// keyed by the batch id; general inventory is not touched.
func (uc *UseCase) AdjustVolume(ctx context.Context, userID, batchID string, in dto.AdjustVolumeRequest) (decimal.Decimal, error) {
	if err := dto.Validate(in); err != nil {
		return decimal.Zero, err
	}
	newVolume := *in.Volume
	if newVolume.LessThan(decimal.Zero) {
		return decimal.Zero, domain.Validation("Volume must be non-negative")
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		current := decimal.Zero
		if b.Volume != nil {
			current = *b.Volume
		}
		diff := current.Sub(newVolume)
		b.Volume = &newVolume
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		if diff.GreaterThan(decimal.Zero) {
			if err := r.Inventory.CreateLoss(ctx, &entity.InventoryLoss{
				ID:           uuid.New().String(),
				Identifier:   batchID,
				QuantityLost: diff,
				Reason:       in.Reason,
				Date:         uc.now(),
				SiteID:       b.SiteID,
				UserID:       userID,
			}); err != nil {
				return err
			}
		}
		return uc.appendLog(ctx, r, batchID, LogVolumeAdjusted,
			fmt.Sprintf("%s -> %s: %s", current.String(), newVolume.String(), in.Reason))
	})
	if err != nil {
		return decimal.Zero, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("volume", newVolume.String()).Msg("batch volume adjusted")
	return newVolume, nil
}

func checkEquipment(ctx context.Context, r repository.Repos, siteID, equipmentID string) error {
	eq, err := r.Sites.GetEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}
	if eq == nil {
		return domain.NotFound("Equipment %s not found", equipmentID)
	}
	if eq.SiteID != siteID {
		return domain.Validation("Equipment %s does not belong to site %s", equipmentID, siteID)
	}
	return nil
}

func orNone(stage string) string {
	if stage == "" {
		return "none"
	}
	return stage
}
