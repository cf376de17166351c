package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/domain/inventory"
)

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"pounds": "lbs",
		"Pounds": "lbs",
		" LBS ":  "lbs",
		"Oz":     "oz",
		"kg":     "kg",
		"":       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, inventory.NormalizeUnit(in), "unit %q", in)
	}
	assert.True(t, inventory.SameUnit("pounds", "LBS"))
	assert.False(t, inventory.SameUnit("lbs", "kg"))
}

func TestCostCalculator_WeightedAverage(t *testing.T) {
	// 10 units already on hand at a total of 50, receiving 30 units at 3 each.
	got := inventory.CostCalculator(decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.NewFromInt(3))
	assert.True(t, got.Equal(decimal.RequireFromString("3.5")), "got %s", got)

	assert.True(t, inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(4)).IsZero())
}

func TestProofGallons(t *testing.T) {
	proof := decimal.NewFromInt(120)
	pg := inventory.ProofGallons(decimal.NewFromInt(50), "Gallons", &proof)
	require.NotNil(t, pg)
	assert.True(t, pg.Equal(decimal.NewFromInt(60)), "got %s", pg)

	assert.Nil(t, inventory.ProofGallons(decimal.NewFromInt(50), "lbs", &proof))
	assert.Nil(t, inventory.ProofGallons(decimal.NewFromInt(50), "gal", nil))
}
