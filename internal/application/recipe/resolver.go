package recipe

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/inventory"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
)

// Requirement is the total amount of one item a recipe needs, in a normalized unit.
type Requirement struct {
	ItemName string
	Quantity decimal.Decimal
	Unit     string
}

// Resolve returns the ordered ingredient lines of the recipe, reading through
// recipes (typically bound to an open transaction).
func Resolve(ctx context.Context, recipes repository.RecipeRepository, recipeID string) ([]entity.RecipeIngredient, error) {
	rec, err := recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFound("Recipe %s not found", recipeID)
	}
	return rec.Ingredients, nil
}

// Aggregate sums lines of the same item and normalized unit, keeping the order
// in which each pair first appears.
func Aggregate(lines []entity.RecipeIngredient) []Requirement {
	out := make([]Requirement, 0, len(lines))
	index := make(map[[2]string]int, len(lines))
	for _, l := range lines {
		unit := inventory.NormalizeUnit(l.Unit)
		key := [2]string{l.ItemName, unit}
		if i, ok := index[key]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			continue
		}
		index[key] = len(out)
		out = append(out, Requirement{ItemName: l.ItemName, Quantity: l.Quantity, Unit: unit})
	}
	return out
}
