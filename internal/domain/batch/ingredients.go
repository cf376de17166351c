package batch

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/inventory"
)

func sameItem(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// tombstones reports whether the excluded override hides the recipe line.
// An override without quantity matches any quantity.
func tombstones(o entity.BatchIngredient, r entity.RecipeIngredient) bool {
	if !o.Excluded || !sameItem(o.ItemName, r.ItemName) || !inventory.SameUnit(o.Unit, r.Unit) {
		return false
	}
	return o.Quantity == nil || o.Quantity.Equal(r.Quantity)
}

// Combined derives the effective ingredient list of a batch: recipe lines not
// tombstoned by an excluded override, followed by the overrides that are not
// excluded and carry a positive quantity.
func Combined(recipe []entity.RecipeIngredient, overrides []entity.BatchIngredient) []entity.BatchIngredient {
	out := make([]entity.BatchIngredient, 0, len(recipe)+len(overrides))
	for _, r := range recipe {
		hidden := false
		for _, o := range overrides {
			if tombstones(o, r) {
				hidden = true
				break
			}
		}
		if hidden {
			continue
		}
		qty := r.Quantity
		out = append(out, entity.BatchIngredient{
			ItemName: r.ItemName,
			Quantity: &qty,
			Unit:     r.Unit,
			IsRecipe: true,
		})
	}
	for _, o := range overrides {
		if o.Excluded || !o.QuantityOrZero().GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PruneStale drops excluded tombstones whose quantity was explicitly set to zero.
func PruneStale(overrides []entity.BatchIngredient) []entity.BatchIngredient {
	out := make([]entity.BatchIngredient, 0, len(overrides))
	for _, o := range overrides {
		if o.Excluded && o.Quantity != nil && o.Quantity.IsZero() {
			continue
		}
		out = append(out, o)
	}
	return out
}

// MergeAddition prunes stale tombstones and folds add into the overrides:
// an existing live entry with the same item and unit accumulates the quantity,
// otherwise add is appended.
func MergeAddition(overrides []entity.BatchIngredient, add entity.BatchIngredient) []entity.BatchIngredient {
	out := PruneStale(overrides)
	for i := range out {
		o := &out[i]
		if o.Excluded || o.IsRecipe != add.IsRecipe || !sameItem(o.ItemName, add.ItemName) || !inventory.SameUnit(o.Unit, add.Unit) {
			continue
		}
		sum := o.QuantityOrZero().Add(add.QuantityOrZero())
		o.Quantity = &sum
		if add.Proof != nil {
			o.Proof = add.Proof
		}
		if add.ProofGallons != nil {
			pg := add.ProofGallons.Add(decimalOrZero(o.ProofGallons))
			o.ProofGallons = &pg
		}
		return out
	}
	return append(out, add)
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
