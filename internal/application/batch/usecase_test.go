package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/application/batch"
	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/domain"
	domainbatch "github.com/jhoicas/brewery-api/internal/domain/batch"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setup(t *testing.T) (*batch.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return batch.NewUseCase(store, store.Repos(), zerolog.Nop()), store
}

func createReq(id string) dto.CreateBatchRequest {
	return dto.CreateBatchRequest{
		BatchID:   id,
		ProductID: "PALE-ALE",
		RecipeID:  "PALE-ALE-STD",
		SiteID:    "SITE-1",
		Volume:    dec("5.0"),
	}
}

func stored(t *testing.T, store *memory.Store, identifier string) decimal.Decimal {
	t.Helper()
	rows, err := store.Repos().Inventory.Find(context.Background(), repository.InventoryFilter{Identifier: identifier})
	require.NoError(t, err)
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Quantity)
	}
	return total
}

func TestCreateBatch_DebitsEveryRecipeIngredient(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusInProgress, b.Status)

	assert.True(t, stored(t, store, "Pale Malt").Equal(decimal.NewFromInt(450)))
	assert.True(t, stored(t, store, "Cascade Hops").Equal(decimal.NewFromInt(18)))
	assert.True(t, stored(t, store, "US-05 Yeast").Equal(decimal.NewFromInt(9)))

	view, err := uc.GetBatch(ctx, "B-1")
	require.NoError(t, err)
	require.Len(t, view.BrewLog, 1)
	assert.Equal(t, batch.LogCreated, view.BrewLog[0].Action)
	assert.Len(t, view.Ingredients, 3)
}

func TestCreateBatch_InsufficientStockChangesNothing(t *testing.T) {
	uc, store := setup(t)
	store.Seed(func(sd *memory.Seeder) {
		sd.Inventory(entity.InventoryItem{
			ID: "SEED-Pale Malt", Identifier: "Pale Malt", ItemName: "Pale Malt", Type: "Ingredient",
			SiteID: "SITE-1", LocationID: "LOC-DRY", Quantity: decimal.NewFromInt(40), Unit: "lbs",
			Status: entity.InventoryStatusStored,
		})
	})

	_, err := uc.CreateBatch(context.Background(), createReq("B-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insufficient inventory for Pale Malt: 40lbs available, 50lbs needed")

	assert.True(t, stored(t, store, "Cascade Hops").Equal(decimal.NewFromInt(20)))
	_, err = uc.GetBatch(context.Background(), "B-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBatch_JoinsAllShortfalls(t *testing.T) {
	uc, store := setup(t)
	store.Seed(func(sd *memory.Seeder) {
		for _, name := range []string{"Pale Malt", "Cascade Hops"} {
			sd.Inventory(entity.InventoryItem{
				ID: "SEED-" + name, Identifier: name, Type: "Ingredient", SiteID: "SITE-1", LocationID: "LOC-DRY",
				Quantity: decimal.NewFromInt(1), Unit: "lbs", Status: entity.InventoryStatusStored,
			})
		}
	})

	_, err := uc.CreateBatch(context.Background(), createReq("B-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pale Malt: 1lbs available, 50lbs needed; Insufficient inventory for Cascade Hops")
}

func TestCreateBatch_DuplicateIsConflict(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	_, err = uc.CreateBatch(ctx, createReq("B-1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, stored(t, store, "Pale Malt").Equal(decimal.NewFromInt(450)), "second attempt must not debit")
}

func TestCreateBatch_Validation(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.CreateBatch(ctx, dto.CreateBatchRequest{BatchID: "B-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Missing required fields: productId, recipeId, siteId")

	req := createReq("B-1")
	req.Volume = dec("0")
	_, err = uc.CreateBatch(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = createReq("B-1")
	req.RecipeID = "NOPE"
	_, err = uc.CreateBatch(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvanceStage_IsMonotonic(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	require.NoError(t, uc.AdvanceStage(ctx, "B-1", dto.EquipmentRequest{Stage: domainbatch.StageFermentation, EquipmentID: "FV-1"}))

	err = uc.AdvanceStage(ctx, "B-1", dto.EquipmentRequest{Stage: domainbatch.StageBrewing, EquipmentID: "FV-1"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Cannot regress from Fermentation to Brewing", err.Error())

	err = uc.AdvanceStage(ctx, "B-1", dto.EquipmentRequest{Stage: domainbatch.StageFiltering})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "equipment is required")

	err = uc.AdvanceStage(ctx, "B-1", dto.EquipmentRequest{Stage: domainbatch.StageFiltering, EquipmentID: "NOPE"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	view, err := uc.GetBatch(ctx, "B-1")
	require.NoError(t, err)
	require.NotNil(t, view.Stage)
	assert.Equal(t, domainbatch.StageFermentation, *view.Stage)
	assert.Equal(t, "FV-1", view.EquipmentID)
}

func TestCompletedBatchIsImmutable(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	completed := entity.BatchStatusCompleted
	require.NoError(t, uc.SetStatus(ctx, "B-1", dto.PatchBatchRequest{Status: &completed}))

	view, err := uc.GetBatch(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, domainbatch.StageCompleted, *view.Stage)

	_, err = uc.AddIngredient(ctx, "B-1", dto.IngredientRequest{ItemName: "Cascade Hops", Quantity: dec("1"), Unit: "lbs"})
	assert.ErrorIs(t, err, domain.ErrBatchCompleted)
	assert.ErrorIs(t, uc.ClearIngredients(ctx, "B-1"), domain.ErrBatchCompleted)
	assert.ErrorIs(t, uc.SetEquipment(ctx, "B-1", "BT-1"), domain.ErrBatchCompleted)
	assert.ErrorIs(t, uc.AdvanceStage(ctx, "B-1", dto.EquipmentRequest{Stage: domainbatch.StagePackaging}), domain.ErrBatchCompleted)
	_, err = uc.SetIngredients(ctx, "B-1", []dto.IngredientRequest{{ItemName: "Cascade Hops", Quantity: dec("1"), Unit: "lbs"}})
	assert.ErrorIs(t, err, domain.ErrBatchCompleted)
	_, err = uc.PatchIngredients(ctx, "B-1", []dto.IngredientRequest{{ItemName: "US-05 Yeast", Unit: "pkg", IsRecipe: true, Excluded: true}})
	assert.ErrorIs(t, err, domain.ErrBatchCompleted)
	assert.ErrorIs(t, uc.DeleteBatch(ctx, "B-1"), domain.ErrBatchCompleted)
	_, err = uc.AdjustVolume(ctx, "u1", "B-1", dto.AdjustVolumeRequest{Volume: dec("1"), Reason: "spill"})
	assert.ErrorIs(t, err, domain.ErrBatchCompleted)

	inProgress := entity.BatchStatusInProgress
	assert.ErrorIs(t, uc.SetStatus(ctx, "B-1", dto.PatchBatchRequest{Status: &inProgress}), domain.ErrBatchCompleted)
	assert.NoError(t, uc.SetStatus(ctx, "B-1", dto.PatchBatchRequest{Status: &completed}), "re-affirming Completed is a no-op")
}

func TestAddIngredient_DebitsAndMerges(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	_, err = uc.AddIngredient(ctx, "B-1", dto.IngredientRequest{ItemName: "Cascade Hops", Quantity: dec("1"), Unit: "lbs"})
	require.NoError(t, err)
	view, err := uc.AddIngredient(ctx, "B-1", dto.IngredientRequest{ItemName: "Cascade Hops", Quantity: dec("2"), Unit: "pounds"})
	require.NoError(t, err)

	require.Len(t, view.AdditionalIngredients, 1)
	assert.True(t, view.AdditionalIngredients[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, stored(t, store, "Cascade Hops").Equal(decimal.NewFromInt(15)))

	_, err = uc.AddIngredient(ctx, "B-1", dto.IngredientRequest{ItemName: "Cascade Hops", Quantity: dec("100"), Unit: "lbs"})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stored(t, store, "Cascade Hops").Equal(decimal.NewFromInt(15)))

	_, err = uc.AddIngredient(ctx, "B-1", dto.IngredientRequest{ItemName: "Unobtainium", Quantity: dec("1"), Unit: "lbs"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatchIngredients_TombstoneHidesRecipeLine(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	resp, err := uc.PatchIngredients(ctx, "B-1", []dto.IngredientRequest{
		{ItemName: "US-05 Yeast", Unit: "pkg", IsRecipe: true, Excluded: true},
		{ItemName: "Cascade Hops", Quantity: dec("4"), Unit: "lbs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ingredients updated successfully", resp.Message)

	names := make([]string, 0, len(resp.Ingredients))
	for _, ing := range resp.Ingredients {
		names = append(names, ing.ItemName)
	}
	assert.NotContains(t, names, "US-05 Yeast")
	assert.Contains(t, names, "Cascade Hops")
	assert.True(t, stored(t, store, "Cascade Hops").Equal(decimal.NewFromInt(18)), "bulk replace does not debit")

	_, err = uc.SetIngredients(ctx, "B-1", []dto.IngredientRequest{{ItemName: "US-05 Yeast", Unit: "pkg", Excluded: true}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bulk set requires quantities")

	_, err = uc.SetIngredients(ctx, "B-1", []dto.IngredientRequest{{ItemName: "Cascade Hops", Quantity: dec("50"), Unit: "lbs"}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, uc.ClearIngredients(ctx, "B-1"))
	view, err := uc.GetBatch(ctx, "B-1")
	require.NoError(t, err)
	assert.Empty(t, view.AdditionalIngredients)
	assert.Len(t, view.Ingredients, 3)
}

func TestAdjustVolume_DecreaseWritesLoss(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	vol, err := uc.AdjustVolume(ctx, "user-1", "B-1", dto.AdjustVolumeRequest{Volume: dec("4.5"), Reason: "dump"})
	require.NoError(t, err)
	assert.True(t, vol.Equal(decimal.RequireFromString("4.5")))

	losses, err := store.Repos().Inventory.ListLosses(ctx, "B-1")
	require.NoError(t, err)
	require.Len(t, losses, 1)
	assert.True(t, losses[0].QuantityLost.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, "user-1", losses[0].UserID)

	_, err = uc.AdjustVolume(ctx, "user-1", "B-1", dto.AdjustVolumeRequest{Volume: dec("6"), Reason: "top up"})
	require.NoError(t, err)
	losses, err = store.Repos().Inventory.ListLosses(ctx, "B-1")
	require.NoError(t, err)
	assert.Len(t, losses, 1, "an increase is not a loss")
}

func TestDeleteBatch(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.CreateBatch(ctx, createReq("B-1"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteBatch(ctx, "B-1"))
	_, err = uc.GetBatch(ctx, "B-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteBatch(ctx, "B-1"), domain.ErrNotFound)
}
