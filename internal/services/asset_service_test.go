package services

import (
	"context"
	"testing"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/entities"
	"asset-tracker/pkg/constants"
	"asset-tracker/pkg/contextkeys"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newAssetService(env *testEnv) AssetServiceInterface {
	return NewAssetService(env.assets, env.logs, env.refs, env.sync, env.clock, zap.NewNop())
}

func userCtx(username string) context.Context {
	return context.WithValue(context.Background(), contextkeys.UsernameKey, username)
}

func newLaptopDTO(name string) dto.CreateAssetDTO {
	return dto.CreateAssetDTO{
		ItemName:     name,
		Category:     "Elektronik",
		Type:         "Laptop",
		Company:      "PT Abadi",
		Location:     "Jakarta",
		RoomLocation: "R101",
		PurchaseDate: "2024-05-01",
		PurchaseCost: "15,000,000",
		Owner:        "IT Department",
	}
}

func TestAssetService_CreateAsset(t *testing.T) {
	ctx := userCtx("budi")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	first, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)
	assert.Equal(t, "001", first.ID)
	assert.Equal(t, "ABC-0105.IT24.001", first.AssetTag)
	assert.Equal(t, "15,000,000", first.PurchaseCost)
	assert.Equal(t, "Elektronik", first.Category)
	assert.Equal(t, constants.StatusActive, first.Status)
	assert.Equal(t, "Input dari Web", first.Notes)
	assert.Equal(t, "No", first.Warranty)

	second, err := svc.CreateAsset(ctx, newLaptopDTO("Latitude"))
	require.NoError(t, err)
	assert.Equal(t, "002", second.ID)
	assert.Equal(t, "ABC-0105.IT24.002", second.AssetTag)

	found, err := svc.FindAsset(ctx, "002")
	require.NoError(t, err)
	assert.Equal(t, "Latitude", found.ItemName)
}

func TestAssetService_CreateAssetWithNewReferences(t *testing.T) {
	ctx := userCtx("budi")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	d := newLaptopDTO("Epson L3110")
	d.Type = "Printer"
	d.Company = "PT Baru"
	d.CodeCompany = "PTB"

	created, err := svc.CreateAsset(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "PTB-0106.IT24.001", created.AssetTag)
}

func TestAssetService_GetAssets(t *testing.T) {
	ctx := userCtx("budi")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)
	_, err = svc.CreateAsset(ctx, newLaptopDTO("Latitude"))
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, "002", dto.ChangeStatusDTO{Status: constants.StatusUnderRepair})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		filter types.AssetFilter
		want   []string
	}{
		{"all", types.AssetFilter{Status: "All"}, []string{"ThinkPad", "Latitude"}},
		{"by status", types.AssetFilter{Status: constants.StatusUnderRepair}, []string{"Latitude"}},
		{"search by name", types.AssetFilter{Search: "think"}, []string{"ThinkPad"}},
		{"search by tag", types.AssetFilter{Search: "it24.002"}, []string{"Latitude"}},
		{"search by category", types.AssetFilter{Search: "elektronik"}, []string{"ThinkPad", "Latitude"}},
		{"no match", types.AssetFilter{Search: "meja"}, []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assets, err := svc.GetAssets(ctx, tc.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(assets))
			for _, a := range assets {
				names = append(names, a.ItemName)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestAssetService_ChangeStatusWritesLog(t *testing.T) {
	ctx := userCtx("budi")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(ctx, "001", dto.ChangeStatusDTO{Status: constants.StatusToBeDisposed})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusToBeDisposed, updated.Status)

	table, err := env.store.ReadTable(ctx, constants.SheetLogStatus)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	rec := table.Records()[0]
	assert.Equal(t, "2025-06-01 09:30:00", rec["Timestamp"])
	assert.Equal(t, "001", rec["Asset ID"])
	assert.Equal(t, constants.StatusActive, rec["Old Status"])
	assert.Equal(t, constants.StatusToBeDisposed, rec["New Status"])
	assert.Equal(t, "budi", rec["Changed By"])

	_, err = svc.ChangeStatus(ctx, "404", dto.ChangeStatusDTO{Status: constants.StatusActive})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssetService_Relocate(t *testing.T) {
	ctx := userCtx("sari")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)

	inRoom, err := svc.SearchByLocation(ctx, "jakarta", "r101")
	require.NoError(t, err)
	require.Len(t, inRoom, 1)

	_, err = svc.Relocate(ctx, dto.RelocateAssetDTO{AssetID: "001", ToLocation: "Jakarta", ToRoom: "R101"})
	assert.ErrorIs(t, err, apperrors.ErrSameLocation)

	moved, err := svc.Relocate(ctx, dto.RelocateAssetDTO{AssetID: "001", ToLocation: "Bandung", ToRoom: "B1"})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", moved.Location)
	assert.Equal(t, "B1", moved.RoomLocation)

	inRoom, err = svc.SearchByLocation(ctx, "Jakarta", "R101")
	require.NoError(t, err)
	assert.Empty(t, inRoom)

	table, err := env.store.ReadTable(ctx, constants.SheetLogRelocation)
	require.NoError(t, err)
	rec := table.Records()[0]
	assert.Equal(t, "Jakarta", rec["From Location"])
	assert.Equal(t, "R101", rec["From Room"])
	assert.Equal(t, "Bandung", rec["To Location"])
	assert.Equal(t, "sari", rec["Moved By"])

	_, err = svc.SearchByLocation(ctx, "", "R101")
	assert.Error(t, err)
}

func TestAssetService_Dispose(t *testing.T) {
	ctx := userCtx("admin")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)
	_, err = svc.ChangeStatus(ctx, "001", dto.ChangeStatusDTO{Status: constants.StatusToBeDisposed})
	require.NoError(t, err)

	candidates, err := svc.GetDisposalCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	disposed, err := svc.Dispose(ctx, "001", dto.DisposeAssetDTO{DisposalMethod: "Sold"})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusDisposed, disposed.Status)

	_, err = svc.Dispose(ctx, "001", dto.DisposeAssetDTO{DisposalMethod: "Sold"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDisposed)

	logs, err := svc.GetDisposalLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entities.DisposalLog{
		Timestamp:      "2025-06-01 09:30:00",
		AssetID:        "001",
		AssetName:      "ThinkPad",
		DisposalMethod: "Sold",
		DisposalValue:  "0",
		DisposedBy:     "admin",
		Status:         constants.StatusDisposed,
	}, logs[0])

	candidates, err = svc.GetDisposalCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAssetService_DeleteAsset(t *testing.T) {
	ctx := userCtx("admin")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(ctx, "001"))
	assert.ErrorIs(t, svc.DeleteAsset(ctx, "001"), apperrors.ErrAssetNotFound)
}

func TestAssetService_DashboardAndExport(t *testing.T) {
	ctx := userCtx("budi")
	env := newTestEnv(t)
	env.seedReferences(t)
	svc := newAssetService(env)

	_, err := svc.CreateAsset(ctx, newLaptopDTO("ThinkPad"))
	require.NoError(t, err)
	old := newLaptopDTO("Latitude")
	old.PurchaseDate = "2022-01-15"
	_, err = svc.CreateAsset(ctx, old)
	require.NoError(t, err)

	summary, err := svc.Dashboard(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "All", summary.Status)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, []dto.DashboardEntryDTO{{Label: "Elektronik", Count: 2}}, summary.ByCategory)
	assert.Equal(t, []dto.DashboardEntryDTO{{Label: "2022", Count: 1}, {Label: "2024", Count: 1}}, summary.ByYear)

	buf, err := svc.ExportAssets(ctx, "All")
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Assets")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, constants.AssetHeader[:3], rows[0][:3])
	assert.Equal(t, "ThinkPad", rows[1][1])
}
