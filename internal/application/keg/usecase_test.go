package keg_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/internal/application/dto"
	"github.com/jhoicas/brewery-api/internal/application/keg"
	"github.com/jhoicas/brewery-api/internal/domain"
	"github.com/jhoicas/brewery-api/internal/domain/entity"
	"github.com/jhoicas/brewery-api/internal/domain/repository"
	"github.com/jhoicas/brewery-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*memory.Store, *keg.UseCase) {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return store, keg.NewUseCase(store, store.Repos(), zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	k, err := uc.Register(ctx, dto.RegisterKegRequest{Code: "K-0100", PackagingType: "1/6 Keg"})
	require.NoError(t, err)
	assert.Equal(t, entity.KegStatusEmpty, k.Status)

	txs, err := uc.Transactions(ctx, "K-0100")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.KegActionRegistered, txs[0].Action)

	_, err = uc.Register(ctx, dto.RegisterKegRequest{Code: "K-0100"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Register(ctx, dto.RegisterKegRequest{Code: "k_0101"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterKegRequest{Code: "K-0102", Status: "Lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_AnyStatusAllowed(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	k, err := uc.Update(ctx, "K-0001", dto.UpdateKegRequest{Status: strPtr(entity.KegStatusBroken)})
	require.NoError(t, err)
	assert.Equal(t, entity.KegStatusBroken, k.Status)

	k, err = uc.Update(ctx, "K-0001", dto.UpdateKegRequest{Status: strPtr(entity.KegStatusFilled), CustomerID: strPtr("CUST-1")})
	require.NoError(t, err)
	assert.Equal(t, entity.KegStatusFilled, k.Status)
	assert.Equal(t, "CUST-1", k.CustomerID)

	txs, err := uc.Transactions(ctx, "K-0001")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "CUST-1", txs[len(txs)-1].Location)
}

func TestUpdate_Rejections(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, "K-0001", dto.UpdateKegRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "K-9999", dto.UpdateKegRequest{Status: strPtr(entity.KegStatusEmpty)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, "K-0001", dto.UpdateKegRequest{CustomerID: strPtr("CUST-404")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, "K-9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransitions(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	err := store.Run(ctx, func(r repository.Repos) error {
		return keg.Fill(ctx, r.Kegs, "K-0001", keg.FillInput{ProductID: "PALE-ALE", BatchID: "B-1", LocationID: "LOC-COLD", Date: now})
	})
	require.NoError(t, err)

	err = store.Run(ctx, func(r repository.Repos) error {
		return keg.Fill(ctx, r.Kegs, "K-0001", keg.FillInput{ProductID: "PALE-ALE", BatchID: "B-2", Date: now})
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "Keg K-0001 is not empty (status: Filled)")

	err = store.Run(ctx, func(r repository.Repos) error {
		return keg.Ship(ctx, r.Kegs, "K-0001", keg.ShipInput{InvoiceID: "INV-1001", CustomerID: "CUST-1", CustomerName: "Corner Tap House", Date: now.Add(time.Hour)})
	})
	require.NoError(t, err)

	k, err := uc.Get(ctx, "K-0001")
	require.NoError(t, err)
	assert.Equal(t, entity.KegStatusFilled, k.Status)
	assert.Equal(t, "CUST-1", k.CustomerID)
	assert.Empty(t, k.LocationID)

	// a keg at a customer is not emptied by reversing its packaging
	var changed bool
	err = store.Run(ctx, func(r repository.Repos) error {
		var err error
		changed, err = keg.Empty(ctx, r.Kegs, "K-0001", "B-1", now)
		return err
	})
	require.NoError(t, err)
	assert.False(t, changed)

	err = store.Run(ctx, func(r repository.Repos) error {
		return keg.Ship(ctx, r.Kegs, "K-0002", keg.ShipInput{CustomerID: "CUST-1", Date: now})
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	txs, err := uc.Transactions(ctx, "K-0001")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, entity.KegActionFilled, txs[0].Action)
	assert.Equal(t, entity.KegActionShipped, txs[1].Action)
	assert.Equal(t, "Corner Tap House", txs[1].Location)
	assert.Equal(t, "INV-1001", txs[1].InvoiceID)
}
