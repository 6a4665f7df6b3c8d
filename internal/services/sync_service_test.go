package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"asset-tracker/internal/entities"
	"asset-tracker/internal/sheets"
	"asset-tracker/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendRawAsset(t *testing.T, env *testEnv, a entities.Asset) {
	t.Helper()
	require.NoError(t, env.assets.AppendAsset(context.Background(), a))
}

func TestSyncService_Run(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedReferences(t)

	laptop := entities.Asset{
		ItemName: "ThinkPad", Category: "Elektronik", Type: "Laptop",
		Company: "PT Abadi", Owner: "IT Department",
		PurchaseDate: "2023-02-10", PurchaseCost: "Rp 1,000,000", Status: constants.StatusActive,
	}
	appendRawAsset(t, env, laptop)
	second := laptop
	second.ItemName = "Latitude"
	appendRawAsset(t, env, second)
	appendRawAsset(t, env, entities.Asset{
		ItemName: "Kursi", Category: "Furniture", Type: "Chair",
		Company: "PT Abadi", Owner: "IT Department", PurchaseDate: "kemarin", PurchaseCost: "abc",
	})

	res, err := env.sync.Run(ctx)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 3, res.Updated)
	assert.Equal(t, 0, res.Renumbered)
	assert.Equal(t, string(SyncStateDone), res.State)

	assets, err := env.assets.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 3)

	first := assets[0]
	assert.Equal(t, "001", first.ID)
	assert.Equal(t, "2023", first.Tahun)
	assert.Equal(t, "01", first.CodeCategory)
	assert.Equal(t, "05", first.CodeType)
	assert.Equal(t, "ABC", first.CodeCompany)
	assert.Equal(t, "IT", first.CodeOwner)
	assert.Equal(t, "10", first.ResidualPercent)
	assert.Equal(t, "5", first.UsefulLife)
	assert.Equal(t, "100000.00", first.ResidualValue)
	assert.Equal(t, "180000.00", first.DepreciationValue)
	assert.Equal(t, "640000.00", first.BookValue)
	assert.Equal(t, "ABC-0105.IT23.001", first.AssetTag)
	assert.Equal(t, "Rp 1,000,000", first.PurchaseCost, "source fields stay untouched")

	assert.Equal(t, "002", assets[1].ID)
	assert.Equal(t, "ABC-0105.IT23.002", assets[1].AssetTag)

	chair := assets[2]
	assert.Equal(t, "003", chair.ID)
	assert.Equal(t, "2025", chair.Tahun, "unparsable date falls back to current year")
	assert.Equal(t, "0", chair.ResidualPercent)
	assert.Equal(t, "1", chair.UsefulLife)
	assert.Equal(t, "0.00", chair.BookValue)
	assert.Equal(t, "", chair.AssetTag, "unknown category and type give no tag")

	assert.Equal(t, res, env.sync.LastResult())
}

func TestSyncService_RenumberingIsReported(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedReferences(t)

	a := entities.Asset{
		ItemName: "ThinkPad", Category: "Elektronik", Type: "Laptop",
		Company: "PT Abadi", Owner: "IT Department", PurchaseDate: "2024-01-01", PurchaseCost: "100",
	}
	appendRawAsset(t, env, a)
	appendRawAsset(t, env, a)

	_, err := env.sync.Run(ctx)
	require.NoError(t, err)

	_, err = env.assets.DeleteAsset(ctx, "001")
	require.NoError(t, err)

	res, err := env.sync.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Renumbered)

	assets, err := env.assets.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "001", assets[0].ID)
	assert.Equal(t, "ABC-0105.IT24.001", assets[0].AssetTag)
}

func TestSyncService_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("reference failure leaves table untouched", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedReferences(t)
		appendRawAsset(t, env, entities.Asset{ItemName: "ThinkPad", Category: "Elektronik"})
		env.store.readErr[constants.SheetRefCategories] = errors.New("permission denied")

		res, err := env.sync.Run(ctx)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, string(SyncStateFailed), res.State)
		assert.Contains(t, res.Message, "permission denied")
		assert.Equal(t, 0, env.store.writes)

		assets, err := env.assets.GetAssets(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", assets[0].ID)
	})

	t.Run("missing assets sheet", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedReferences(t)

		res, err := env.sync.Run(ctx)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, 0, env.store.writes)
	})

	t.Run("retry exhaustion is returned", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedReferences(t)
		appendRawAsset(t, env, entities.Asset{ItemName: "ThinkPad", Category: "Elektronik"})
		env.store.writeErr = fmt.Errorf("%w: write_table Assets: quota", sheets.ErrRetriesExhausted)

		res, err := env.sync.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, sheets.ErrRetriesExhausted)
		assert.False(t, res.Success)
		assert.Equal(t, string(SyncStateFailed), env.sync.LastResult().State)
	})

	t.Run("empty table", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.EnsureTable(ctx, constants.SheetAssets, constants.AssetHeader))

		res, err := env.sync.Run(ctx)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 0, res.Updated)
		assert.Equal(t, 0, env.store.writes)
	})
}
