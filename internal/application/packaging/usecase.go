package packaging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/application/ports"
	"github.com/jhoicas/brewery-api/internal/domain"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	domainpkg "github.com/jhoicas/brewery-api/internal/domain/packaging"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// Brew log actions written by packaging.
const (
	LogPackaged         = "Packaged"
	LogPackagingUpdated = "Packaging Updated"
	LogPackagingDeleted = "Packaging Deleted"
	LogVolumeIncreased  = "Volume Increased"
	finishedGoodsUnit   = "Units"
)

// UseCase turns batch volume into finished goods.
type UseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	volumes  *domainpkg.VolumeTable
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase builds the engine around the package-type volume table loaded at startup.
func NewUseCase(txRunner ports.TxRunner, repos repository.Repos, volumes *domainpkg.VolumeTable, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, volumes: volumes, log: log, now: time.Now}
}

// Package packages quantity units of packageType from the batch. When the
// batch is short by more than the tolerance it returns a volumeAdjustment
// prompt and changes nothing, unless AllowVolumeIncrease is set, in which case
// the shortfall is added to the batch in the same transaction.
func (uc *UseCase) Package(ctx context.Context, batchID string, in dto.PackageRequest) (*dto.PackageResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Validation("Quantity must be greater than 0")
	}
	perUnit, ok := uc.volumes.PerUnit(in.PackageType)
	if !ok {
		return nil, domain.Validation("Unknown package type: %s", in.PackageType)
	}
	if err := checkKegCodes(in); err != nil {
		return nil, err
	}
	volumeUsed := perUnit.Mul(decimal.NewFromInt(in.Quantity))

	var resp *dto.PackageResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadBatch(ctx, r, batchID)
		if err != nil {
			return err
		}
		if b.Volume == nil {
			return domain.Validation("Batch %s has no volume set", batchID)
		}
		available := *b.Volume
		shortfall := volumeUsed.Sub(available)
		if shortfall.GreaterThan(domainpkg.VolumeTolerance) {
			if !in.AllowVolumeIncrease {
				msg := fmt.Sprintf("Batch %s has %s barrels available but %s barrels are needed. Increase the batch volume by %s barrels?",
					batchID, available.String(), volumeUsed.String(), shortfall.String())
				resp = &dto.PackageResponse{Prompt: dto.PromptVolumeAdjustment, Message: msg, Shortfall: &shortfall}
				return nil
			}
			if err := uc.appendLog(ctx, r, batchID, LogVolumeIncreased,
				fmt.Sprintf("%s -> %s to package %d %s", available.String(), volumeUsed.String(), in.Quantity, in.PackageType)); err != nil {
				return err
			}
			available = volumeUsed
		}
		newVolume := available.Sub(volumeUsed)
		if newVolume.LessThan(decimal.Zero) {
			newVolume = decimal.Zero
		}

		loc, err := r.Sites.GetLocation(ctx, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.NotFound("Location %s not found", in.LocationID)
		}
		if loc.SiteID != b.SiteID {
			return domain.Validation("Location %s does not belong to site %s", in.LocationID, b.SiteID)
		}
		identifier, price, err := uc.finishedGood(ctx, r, b.ProductID, in.PackageType)
		if err != nil {
			return err
		}

		now := uc.now()
		for _, code := range in.KegCodes {
			if err := keg.Fill(ctx, r.Kegs, code, keg.FillInput{
				ProductID:     b.ProductID,
				BatchID:       batchID,
				LocationID:    in.LocationID,
				PackagingType: in.PackageType,
				Date:          now,
			}); err != nil {
				return err
			}
		}

		run := &entity.BatchPackaging{
			ID:          uuid.New().String(),
			BatchID:     batchID,
			PackageType: in.PackageType,
			Quantity:    in.Quantity,
			Volume:      volumeUsed,
			LocationID:  in.LocationID,
			SiteID:      b.SiteID,
			Date:        now,
			KegCodes:    in.KegCodes,
		}
		if err := r.Packaging.Create(ctx, run); err != nil {
			return err
		}

		b.Volume = &newVolume
		b.Stage = domainbatch.StagePackaging
		b.UpdatedAt = now
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		if _, err := inventory.Credit(ctx, r.Inventory, inventory.CreditInput{
			Identifier:       identifier,
			Type:             entity.InventoryTypeFinishedGoods,
			SiteID:           b.SiteID,
			LocationID:       in.LocationID,
			Quantity:         decimal.NewFromInt(in.Quantity),
			Unit:             finishedGoodsUnit,
			Price:            price.Price,
			IsKegDepositItem: price.IsKegDepositItem,
			Date:             now,
		}); err != nil {
			return err
		}
		if err := uc.appendLog(ctx, r, batchID, LogPackaged,
			fmt.Sprintf("%d x %s (%s barrels)", in.Quantity, in.PackageType, volumeUsed.String())); err != nil {
			return err
		}
		resp = &dto.PackageResponse{
			Message:       fmt.Sprintf("Packaged %d %s from batch %s", in.Quantity, in.PackageType, batchID),
			NewIdentifier: identifier,
			Quantity:      in.Quantity,
			NewVolume:     &newVolume,
			PackageID:     run.ID,
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("package_type", in.PackageType).Msg("packaging rejected")
		return nil, err
	}
	if resp.Prompt != "" {
		uc.log.Info().Str("batch_id", batchID).Str("shortfall", resp.Shortfall.String()).Msg("packaging needs volume adjustment")
		return resp, nil
	}
	uc.log.Info().
		Str("batch_id", batchID).
		Str("identifier", resp.NewIdentifier).
		Int64("quantity", in.Quantity).
		Str("new_volume", resp.NewVolume.String()).
		Msg("batch packaged")
	return resp, nil
}

// UpdatePackaging changes the unit count of a packaging run, moving the
// volume difference back to or out of the batch and the unit difference into
// or out of finished goods.
func (uc *UseCase) UpdatePackaging(ctx context.Context, batchID, packageID string, quantity int64) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domain.Validation("Quantity must be greater than 0")
	}
	var newBatchVolume decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadBatch(ctx, r, batchID)
		if err != nil {
			return err
		}
		run, err := loadRun(ctx, r, batchID, packageID)
		if err != nil {
			return err
		}
		if len(run.KegCodes) > 0 && quantity != run.Quantity {
			return domain.Conflict("Cannot change the quantity of keg packaging %s: delete it and package again", packageID)
		}
		perUnit, ok := uc.volumes.PerUnit(run.PackageType)
		if !ok {
			return domain.Validation("Unknown package type: %s", run.PackageType)
		}
		newVolume := perUnit.Mul(decimal.NewFromInt(quantity))
		current := volumeOf(b)
		newBatchVolume = current.Add(run.Volume.Sub(newVolume))
		if newBatchVolume.LessThan(decimal.Zero) {
			return domain.Insufficient("Insufficient batch volume: %s barrels available, %s barrels needed",
				current.String(), newVolume.Sub(run.Volume).String())
		}

		identifier, price, err := uc.finishedGood(ctx, r, b.ProductID, run.PackageType)
		if err != nil {
			return err
		}
		now := uc.now()
		diff := quantity - run.Quantity
		switch {
		case diff > 0:
			_, err = inventory.Credit(ctx, r.Inventory, inventory.CreditInput{
				Identifier:       identifier,
				Type:             entity.InventoryTypeFinishedGoods,
				SiteID:           run.SiteID,
				LocationID:       run.LocationID,
				Quantity:         decimal.NewFromInt(diff),
				Unit:             finishedGoodsUnit,
				Price:            price.Price,
				IsKegDepositItem: price.IsKegDepositItem,
				Date:             now,
			})
		case diff < 0:
			err = inventory.Adjust(ctx, r.Inventory, identifier, run.SiteID, run.LocationID, decimal.NewFromInt(diff), false)
		}
		if err != nil {
			return err
		}

		oldQuantity := run.Quantity
		run.Quantity = quantity
		run.Volume = newVolume
		if err := r.Packaging.Update(ctx, run); err != nil {
			return err
		}
		b.Volume = &newBatchVolume
		b.UpdatedAt = now
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		return uc.appendLog(ctx, r, batchID, LogPackagingUpdated,
			fmt.Sprintf("%s: %d -> %d x %s", packageID, oldQuantity, quantity, run.PackageType))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("package_id", packageID).Msg("packaging update rejected")
		return decimal.Zero, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("package_id", packageID).Int64("quantity", quantity).Msg("packaging updated")
	return newBatchVolume, nil
}

// DeletePackaging reverses a packaging run: its volume goes back to the batch,
// its units leave finished goods (the row is removed when it reaches exactly
// zero) and kegs still in house are emptied.
func (uc *UseCase) DeletePackaging(ctx context.Context, batchID, packageID string) (decimal.Decimal, error) {
	var newBatchVolume decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadBatch(ctx, r, batchID)
		if err != nil {
			return err
		}
		run, err := loadRun(ctx, r, batchID, packageID)
		if err != nil {
			return err
		}
		product, err := r.Products.GetByID(ctx, b.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("Product %s not found", b.ProductID)
		}
		identifier := domainpkg.FinishedGoodsIdentifier(product.Name, run.PackageType)
		if err := inventory.Adjust(ctx, r.Inventory, identifier, run.SiteID, run.LocationID,
			decimal.NewFromInt(-run.Quantity), true); err != nil {
			return err
		}

		now := uc.now()
		for _, code := range run.KegCodes {
			if _, err := keg.Empty(ctx, r.Kegs, code, batchID, now); err != nil {
				return err
			}
		}
		if err := r.Packaging.Delete(ctx, run.ID); err != nil {
			return err
		}
		newBatchVolume = volumeOf(b).Add(run.Volume)
		b.Volume = &newBatchVolume
		b.UpdatedAt = now
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		return uc.appendLog(ctx, r, batchID, LogPackagingDeleted,
			fmt.Sprintf("%s: %d x %s returned %s barrels", packageID, run.Quantity, run.PackageType, run.Volume.String()))
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("package_id", packageID).Msg("packaging deletion rejected")
		return decimal.Zero, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("package_id", packageID).Msg("packaging deleted")
	return newBatchVolume, nil
}

// ListPackaging returns the packaging runs of a batch in creation order.
func (uc *UseCase) ListPackaging(ctx context.Context, batchID string) ([]*entity.BatchPackaging, error) {
	b, err := uc.repos.Batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("Batch %s not found", batchID)
	}
	return uc.repos.Packaging.ListByBatch(ctx, batchID)
}

// finishedGood resolves the catalog item and price of a product in packageType.
func (uc *UseCase) finishedGood(ctx context.Context, r repository.Repos, productID, packageType string) (string, *entity.ProductPackageType, error) {
	product, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return "", nil, err
	}
	if product == nil {
		return "", nil, domain.NotFound("Product %s not found", productID)
	}
	identifier := domainpkg.FinishedGoodsIdentifier(product.Name, packageType)
	item, err := r.Items.GetByName(ctx, identifier)
	if err != nil {
		return "", nil, err
	}
	if item == nil {
		return "", nil, domain.NotFound("Item %s not found", identifier)
	}
	if !item.Enabled {
		return "", nil, domain.Validation("Item %s is disabled", identifier)
	}
	price, err := r.Products.GetPackageType(ctx, productID, packageType)
	if err != nil {
		return "", nil, err
	}
	if price == nil {
		return "", nil, domain.NotFound("No price configured for %s %s", product.Name, packageType)
	}
	return identifier, price, nil
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

func checkKegCodes(in dto.PackageRequest) error {
	if len(in.KegCodes) == 0 {
		return nil
	}
	if !domainpkg.IsKeg(in.PackageType) {
		return domain.Validation("Keg codes are only accepted for keg package types, got %s", in.PackageType)
	}
	seen := make(map[string]bool, len(in.KegCodes))
	for _, code := range in.KegCodes {
		if !domainpkg.ValidKegCode(code) {
			return domain.Validation("Invalid keg code %s: only A-Z, 0-9 and - are allowed", code)
		}
		if seen[code] {
			return domain.Validation("Keg code %s is listed more than once", code)
		}
		seen[code] = true
	}
	if int64(len(in.KegCodes)) != in.Quantity {
		return domain.Validation("Packaging %d %s requires exactly %d keg codes, got %d",
			in.Quantity, in.PackageType, in.Quantity, len(in.KegCodes))
	}
	return nil
}

func loadBatch(ctx context.Context, r repository.Repos, batchID string) (*entity.Batch, error) {
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

func loadRun(ctx context.Context, r repository.Repos, batchID, packageID string) (*entity.BatchPackaging, error) {
	run, err := r.Packaging.Get(ctx, batchID, packageID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.NotFound("Packaging %s not found for batch %s", packageID, batchID)
	}
	return run, nil
}

func volumeOf(b *entity.Batch) decimal.Decimal {
	if b.Volume == nil {
		return decimal.Zero
	}
	return *b.Volume
}
