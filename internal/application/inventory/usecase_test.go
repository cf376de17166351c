package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/inventory"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
)

func setup(t *testing.T) *inventory.LedgerUseCase {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return inventory.NewLedgerUseCase(store, store.Repos(), zerolog.Nop())
}

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func malt(qty, cost string) dto.ReceiveItemRequest {
	return dto.ReceiveItemRequest{
		Identifier:   "Crystal Malt",
		Item:         "Crystal Malt",
		Type:         "Ingredient",
		Quantity:     d(qty),
		Unit:         "lbs",
		Cost:         d(cost),
		ReceivedDate: "2024-03-01",
		Status:       entity.InventoryStatusReceived,
		SiteID:       "SITE-1",
		LocationID:   "LOC-DRY",
	}
}

func TestReceive_MergesWithWeightedCost(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{malt("100", "1.00")}))
	require.NoError(t, uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{malt("100", "2.00")}))

	rows, err := uc.List(ctx, "Crystal Malt")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(200)))
	assert.True(t, rows[0].Cost.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, rows[0].TotalCost.Equal(decimal.NewFromInt(300)))
}

func TestReceive_SpiritsProofGallons(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	in := dto.ReceiveItemRequest{
		Identifier:   "Neutral Spirit",
		Item:         "Neutral Spirit",
		Type:         entity.InventoryTypeSpirits,
		Account:      entity.AccountStorage,
		Quantity:     d("10"),
		Unit:         "gal",
		Proof:        d("80"),
		ReceivedDate: "2024-03-01",
		Status:       entity.InventoryStatusStored,
		SiteID:       "SITE-1",
		LocationID:   "LOC-DRY",
	}
	require.NoError(t, uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{in}))

	rows, err := uc.List(ctx, "Neutral Spirit")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ProofGallons)
	assert.True(t, rows[0].ProofGallons.Equal(decimal.NewFromInt(8)))

	noAccount := in
	noAccount.Account = ""
	err = uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{noAccount})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_AllOrNothing(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	bad := malt("5", "1.00")
	bad.Identifier = "Wheat Malt"
	bad.LocationID = "LOC-ELSEWHERE"
	err := uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{malt("100", "1.00"), bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	rows, err := uc.List(ctx, "Crystal Malt")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReceive_Validation(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	zero := malt("0", "1.00")
	badDate := malt("1", "1.00")
	badDate.ReceivedDate = "03/01/2024"
	negCost := malt("1", "-1")
	other := malt("1", "1")
	other.Type = entity.InventoryTypeOther
	badStatus := malt("1", "1")
	badStatus.Status = "Lost"

	for name, in := range map[string]dto.ReceiveItemRequest{
		"zero quantity":      zero,
		"bad date":           badDate,
		"negative cost":      negCost,
		"other without desc": other,
		"unknown status":     badStatus,
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, uc.Receive(ctx, "u1", []dto.ReceiveItemRequest{in}), domain.ErrInvalidInput)
		})
	}
	assert.ErrorIs(t, uc.Receive(ctx, "u1", nil), domain.ErrInvalidInput)
}

func TestRecordLoss_Compounds(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()
	req := dto.RecordLossRequest{Identifier: "Pale Malt", QuantityLost: d("10"), Reason: "Spilled", SiteID: "SITE-1"}

	_, err := uc.RecordLoss(ctx, "u1", req)
	require.NoError(t, err)
	loss, err := uc.RecordLoss(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "u1", loss.UserID)

	rows, err := uc.List(ctx, "Pale Malt")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(480)))

	losses, err := uc.Losses(ctx, "Pale Malt")
	require.NoError(t, err)
	assert.Len(t, losses, 2)
}

func TestRecordLoss_Rejections(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	_, err := uc.RecordLoss(ctx, "u1", dto.RecordLossRequest{Identifier: "Pale Malt", QuantityLost: d("0"), Reason: "x", SiteID: "SITE-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordLoss(ctx, "u1", dto.RecordLossRequest{Identifier: "Pale Malt", QuantityLost: d("-3"), Reason: "x", SiteID: "SITE-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordLoss(ctx, "u1", dto.RecordLossRequest{Identifier: "Pale Malt", QuantityLost: d("501"), Reason: "x", SiteID: "SITE-1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RecordLoss(ctx, "u1", dto.RecordLossRequest{Identifier: "Unobtainium", QuantityLost: d("1"), Reason: "x", SiteID: "SITE-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	losses, err := uc.Losses(ctx, "Pale Malt")
	require.NoError(t, err)
	assert.Empty(t, losses)
}
