package batch

import (
	"context"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/recipe"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// view assembles the batch response: overrides, derived ingredients and brew log.
func view(ctx context.Context, r repository.Repos, b *entity.Batch) (*dto.BatchResponse, error) {
	lines, err := recipe.Resolve(ctx, r.Recipes, b.RecipeID)
	if err != nil {
		return nil, err
	}
	entries, err := r.Batches.ListLog(ctx, b.BatchID)
	if err != nil {
		return nil, err
	}
	var stage *string
	if b.Stage != "" {
		s := b.Stage
		stage = &s
	}
	logs := make([]dto.BrewLogResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, dto.BrewLogResponse{At: e.At, Action: e.Action, Detail: e.Detail})
	}
	return &dto.BatchResponse{
		BatchID:               b.BatchID,
		ProductID:             b.ProductID,
		RecipeID:              b.RecipeID,
		SiteID:                b.SiteID,
		FermenterID:           b.FermenterID,
		EquipmentID:           b.EquipmentID,
		Status:                b.Status,
		Stage:                 stage,
		BatchType:             b.BatchType,
		Date:                  b.Date.Format("2006-01-02"),
		Volume:                b.Volume,
		AdditionalIngredients: toIngredientResponses(b.AdditionalIngredients),
		Ingredients:           toIngredientResponses(domainbatch.Combined(lines, b.AdditionalIngredients)),
		BrewLog:               logs,
	}, nil
}

func toIngredient(in dto.IngredientRequest) entity.BatchIngredient {
	return entity.BatchIngredient{
		ItemName:     in.ItemName,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		IsRecipe:     in.IsRecipe,
		Excluded:     in.Excluded,
		Proof:        in.Proof,
		ProofGallons: in.ProofGallons,
	}
}

func toIngredientResponses(list []entity.BatchIngredient) []dto.IngredientResponse {
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, i := range list {
		out = append(out, dto.IngredientResponse{
			ItemName:     i.ItemName,
			Quantity:     i.Quantity,
			Unit:         i.Unit,
			IsRecipe:     i.IsRecipe,
			Excluded:     i.Excluded,
			Proof:        i.Proof,
			ProofGallons: i.ProofGallons,
		})
	}
	return out
}
