package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWorkbook(t *testing.T) *WorkbookStore {
	t.Helper()
	store, err := NewWorkbookStore(filepath.Join(t.TempDir(), "assets.xlsx"), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestWorkbookStore_MissingSheet(t *testing.T) {
	store := newTestWorkbook(t)
	ctx := context.Background()

	_, err := store.ReadTable(ctx, "Ref_Owners")
	assert.ErrorIs(t, err, ErrTableNotFound)

	err = store.AppendRow(ctx, "Ref_Owners", []string{"IT", "01"})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestWorkbookStore_RowOperations(t *testing.T) {
	store := newTestWorkbook(t)
	ctx := context.Background()
	header := []string{"Owner", "Code Owner"}

	require.NoError(t, store.EnsureTable(ctx, "Ref_Owners", header))
	require.NoError(t, store.EnsureTable(ctx, "Ref_Owners", []string{"ignored"}), "second call keeps the header")

	require.NoError(t, store.AppendRow(ctx, "Ref_Owners", []string{"IT", "IT"}))
	require.NoError(t, store.AppendRow(ctx, "Ref_Owners", []string{"Finance", "FN"}))
	require.NoError(t, store.AppendRow(ctx, "Ref_Owners", []string{"HR", "HR"}))

	table, err := store.ReadTable(ctx, "Ref_Owners")
	require.NoError(t, err)
	assert.Equal(t, header, table.Header)
	require.Len(t, table.Rows, 3)

	require.NoError(t, store.UpdateCell(ctx, "Ref_Owners", 1, 1, "FIN"))
	require.NoError(t, store.DeleteRow(ctx, "Ref_Owners", 0))

	table, err = store.ReadTable(ctx, "Ref_Owners")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Finance", table.Value(0, "Owner"))
	assert.Equal(t, "FIN", table.Value(0, "Code Owner"))
	assert.Equal(t, "HR", table.Value(1, "Owner"))
}

func TestWorkbookStore_WriteTableReplacesContent(t *testing.T) {
	store := newTestWorkbook(t)
	ctx := context.Background()

	require.NoError(t, store.WriteTable(ctx, "Assets", []string{"ID", "Item Name"}, [][]string{
		{"001", "Laptop"}, {"002", "Desk"}, {"003", "Chair"},
	}))
	require.NoError(t, store.WriteTable(ctx, "Assets", []string{"ID", "Item Name"}, [][]string{
		{"001", "Monitor"},
	}))

	table, err := store.ReadTable(ctx, "Assets")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Monitor", table.Value(0, "Item Name"))
}
