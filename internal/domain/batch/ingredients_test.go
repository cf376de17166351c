package batch_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
)

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func recipe() []entity.RecipeIngredient {
	return []entity.RecipeIngredient{
		{ItemName: "2-Row Barley", Quantity: decimal.NewFromInt(50), Unit: "pounds"},
		{ItemName: "Cascade Hops", Quantity: decimal.NewFromInt(2), Unit: "lbs"},
	}
}

func TestCombined_RecipeOnly(t *testing.T) {
	out := batch.Combined(recipe(), nil)
	require.Len(t, out, 2)
	assert.True(t, out[0].IsRecipe)
	assert.Equal(t, "2-Row Barley", out[0].ItemName)
}

func TestCombined_TombstoneHidesMatchingRecipeLine(t *testing.T) {
	overrides := []entity.BatchIngredient{
		{ItemName: "2-Row Barley", Quantity: qty("50"), Unit: "lbs", IsRecipe: true, Excluded: true},
		{ItemName: "Citra Hops", Quantity: qty("1.5"), Unit: "lbs"},
		{ItemName: "Irish Moss", Quantity: qty("0"), Unit: "oz"},
	}
	out := batch.Combined(recipe(), overrides)
	require.Len(t, out, 2)
	assert.Equal(t, "Cascade Hops", out[0].ItemName)
	assert.Equal(t, "Citra Hops", out[1].ItemName)
}

func TestCombined_TombstoneWithDifferentQuantityDoesNotHide(t *testing.T) {
	overrides := []entity.BatchIngredient{
		{ItemName: "2-Row Barley", Quantity: qty("40"), Unit: "lbs", Excluded: true},
	}
	assert.Len(t, batch.Combined(recipe(), overrides), 2)
}

func TestCombined_ExcludeOnlyTombstoneMatchesAnyQuantity(t *testing.T) {
	overrides := []entity.BatchIngredient{
		{ItemName: "cascade hops", Unit: "LBS", Excluded: true},
	}
	out := batch.Combined(recipe(), overrides)
	require.Len(t, out, 1)
	assert.Equal(t, "2-Row Barley", out[0].ItemName)
}

func TestMergeAddition(t *testing.T) {
	overrides := []entity.BatchIngredient{
		{ItemName: "Citra Hops", Quantity: qty("1"), Unit: "lbs"},
		{ItemName: "Old", Quantity: qty("0"), Unit: "lbs", Excluded: true},
	}
	out := batch.MergeAddition(overrides, entity.BatchIngredient{ItemName: "Citra Hops", Quantity: qty("0.5"), Unit: "pounds"})
	require.Len(t, out, 1, "stale tombstone pruned and addition merged")
	assert.True(t, out[0].Quantity.Equal(decimal.RequireFromString("1.5")))

	out = batch.MergeAddition(out, entity.BatchIngredient{ItemName: "Yeast", Quantity: qty("1"), Unit: "pkg"})
	require.Len(t, out, 2)
	assert.Equal(t, "Yeast", out[1].ItemName)
}
