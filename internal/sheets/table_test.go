package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	table := NewTable("Assets", [][]string{
		{" ID ", "Item Name", "Status"},
		{"001", "Laptop"},
		{"002", "Desk", "Active"},
	})

	assert.Equal(t, []string{"ID", "Item Name", "Status"}, table.Header)
	assert.Equal(t, 1, table.ColumnIndex("Item Name"))
	assert.Equal(t, -1, table.ColumnIndex("Owner"))
	assert.Equal(t, "", table.Value(0, "Status"), "short rows are padded")
	assert.Equal(t, "Active", table.Value(1, "Status"))
	assert.Equal(t, "", table.Value(5, "Status"))

	records := table.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, "Desk", records[1]["Item Name"])
}

func TestNewTable_Empty(t *testing.T) {
	table := NewTable("Ref_Types", nil)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Records())
}

func TestAlignRow(t *testing.T) {
	row := AlignRow([]string{"A", "B", "C"}, map[string]string{"C": "3", "A": "1", "X": "ignored"})
	assert.Equal(t, []string{"1", "", "3"}, row)
}
