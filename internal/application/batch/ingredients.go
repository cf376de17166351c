package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/domain"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	domaininv "github.com/jhoicas/brewery-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// AddIngredient debits quantity of a catalog item from Stored inventory at the
// batch's site and merges it into the batch overrides. It returns the
// recomputed batch view.
func (uc *UseCase) AddIngredient(ctx context.Context, batchID string, in dto.IngredientRequest) (*dto.BatchResponse, error) {
	if in.ItemName == "" || in.Unit == "" || in.Quantity == nil {
		return nil, domain.Validation("Missing required fields: itemName, quantity, unit")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Validation("Quantity must be greater than 0")
	}
	add := toIngredient(in)
	add.Excluded = false
	if add.ProofGallons == nil {
		add.ProofGallons = domaininv.ProofGallons(*add.Quantity, add.Unit, add.Proof)
	}

	var out *dto.BatchResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		item, err := r.Items.GetByName(ctx, in.ItemName)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFound("Item %s not found", in.ItemName)
		}
		if err := inventory.Debit(ctx, r.Inventory, in.ItemName, b.SiteID, *in.Quantity, in.Unit); err != nil {
			return err
		}
		b.AdditionalIngredients = domainbatch.MergeAddition(b.AdditionalIngredients, add)
		if err := r.Batches.ReplaceIngredients(ctx, batchID, b.AdditionalIngredients); err != nil {
			return err
		}
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		if err := uc.appendLog(ctx, r, batchID, LogIngredientAdded,
			fmt.Sprintf("%s %s %s", in.Quantity.String(), in.Unit, in.ItemName)); err != nil {
			return err
		}
		out, err = view(ctx, r, b)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Str("item", in.ItemName).Msg("ingredient addition rejected")
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("item", in.ItemName).Str("quantity", in.Quantity.String()).Msg("ingredient added")
	return out, nil
}

// SetIngredients replaces the overrides wholesale (bulk POST). Every entry
// needs a quantity.
func (uc *UseCase) SetIngredients(ctx context.Context, batchID string, list []dto.IngredientRequest) (*dto.IngredientsResponse, error) {
	return uc.replace(ctx, batchID, list, false)
}

// PatchIngredients replaces the overrides wholesale (bulk PATCH). Excluded
// entries may omit the quantity to hide a recipe line of any quantity.
func (uc *UseCase) PatchIngredients(ctx context.Context, batchID string, list []dto.IngredientRequest) (*dto.IngredientsResponse, error) {
	return uc.replace(ctx, batchID, list, true)
}

// ClearIngredients empties the overrides, restoring the plain recipe view.
func (uc *UseCase) ClearIngredients(ctx context.Context, batchID string) error {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		if err := r.Batches.ReplaceIngredients(ctx, b.BatchID, nil); err != nil {
			return err
		}
		return uc.appendLog(ctx, r, batchID, LogIngredientsCleared, "")
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Msg("batch ingredients cleared")
	return nil
}

func (uc *UseCase) replace(ctx context.Context, batchID string, list []dto.IngredientRequest, allowExcludeOnly bool) (*dto.IngredientsResponse, error) {
	overrides := make([]entity.BatchIngredient, 0, len(list))
	for i, in := range list {
		if in.ItemName == "" || in.Unit == "" {
			return nil, domain.Validation("Ingredient %d: missing required fields: itemName, unit", i+1)
		}
		if in.Quantity == nil && !(allowExcludeOnly && in.Excluded) {
			return nil, domain.Validation("Ingredient %d (%s): quantity is required", i+1, in.ItemName)
		}
		if in.Quantity != nil && in.Quantity.LessThan(decimal.Zero) {
			return nil, domain.Validation("Ingredient %d (%s): quantity must be non-negative", i+1, in.ItemName)
		}
		ing := toIngredient(in)
		if ing.ProofGallons == nil && ing.Quantity != nil && !ing.Excluded {
			ing.ProofGallons = domaininv.ProofGallons(*ing.Quantity, ing.Unit, ing.Proof)
		}
		overrides = append(overrides, ing)
	}
	overrides = domainbatch.PruneStale(overrides)

	var out *dto.IngredientsResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		b, err := loadMutable(ctx, r, batchID)
		if err != nil {
			return err
		}
		if err := checkSufficiency(ctx, r, b.SiteID, overrides); err != nil {
			return err
		}
		if err := r.Batches.ReplaceIngredients(ctx, batchID, overrides); err != nil {
			return err
		}
		b.AdditionalIngredients = overrides
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		if err := uc.appendLog(ctx, r, batchID, LogIngredientsUpdated, fmt.Sprintf("%d entries", len(overrides))); err != nil {
			return err
		}
		full, err := view(ctx, r, b)
		if err != nil {
			return err
		}
		out = &dto.IngredientsResponse{Message: "Ingredients updated successfully", Ingredients: full.Ingredients}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batchID).Msg("ingredient update rejected")
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Int("entries", len(overrides)).Msg("batch ingredients replaced")
	return out, nil
}

// checkSufficiency verifies Stored inventory covers every live override.
// Excluded entries and zero quantities are not checked.
func checkSufficiency(ctx context.Context, r repository.Repos, siteID string, overrides []entity.BatchIngredient) error {
	type key struct{ item, unit string }
	needed := make(map[key]decimal.Decimal)
	var order []key
	for _, o := range overrides {
		if o.Excluded || !o.QuantityOrZero().GreaterThan(decimal.Zero) {
			continue
		}
		k := key{o.ItemName, domaininv.NormalizeUnit(o.Unit)}
		if _, ok := needed[k]; !ok {
			order = append(order, k)
		}
		needed[k] = needed[k].Add(*o.Quantity)
	}
	var shortfalls []string
	for _, k := range order {
		available, _, err := inventory.Availability(ctx, r.Inventory, k.item, siteID, k.unit)
		if err != nil {
			return err
		}
		if available.LessThan(needed[k]) {
			shortfalls = append(shortfalls, inventory.ShortfallError(k.item, available, needed[k], k.unit).Error())
		}
	}
	if len(shortfalls) > 0 {
		return domain.Insufficient("%s", strings.Join(shortfalls, "; "))
	}
	return nil
}
