package recipe_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/application/recipe"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
)

func TestResolve(t *testing.T) {
	store := memory.NewStore()
	memory.SeedDemo(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	recipes := store.Repos().Recipes

	lines, err := recipe.Resolve(ctx, recipes, "PALE-ALE-STD")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Pale Malt", lines[0].ItemName)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "US-05 Yeast", lines[2].ItemName)

	_, err = recipe.Resolve(ctx, recipes, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Recipe NOPE not found")
}

func TestAggregate_MergesSameItemAcrossUnitSpellings(t *testing.T) {
	lines := []entity.RecipeIngredient{
		{ItemName: "2-Row Barley", Quantity: decimal.NewFromInt(30), Unit: "pounds"},
		{ItemName: "Cascade Hops", Quantity: decimal.NewFromInt(2), Unit: "oz"},
		{ItemName: "2-Row Barley", Quantity: decimal.NewFromInt(20), Unit: "LBS"},
	}

	out := recipe.Aggregate(lines)
	require.Len(t, out, 2)
	assert.Equal(t, "2-Row Barley", out[0].ItemName)
	assert.Equal(t, "lbs", out[0].Unit)
	assert.True(t, out[0].Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "oz", out[1].Unit)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, recipe.Aggregate(nil))
}
