package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadRows_ShorterTableOverwritesTail(t *testing.T) {
	rows := [][]string{
		{"No", "Asset Name"},
		{"001", "Laptop"},
	}

	got := padRows(rows, 4, 3)

	assert.Equal(t, [][]string{
		{"No", "Asset Name", ""},
		{"001", "Laptop", ""},
		{"", "", ""},
		{"", "", ""},
	}, got)
}

func TestPadRows_LongerTableKeepsItsSize(t *testing.T) {
	rows := [][]string{
		{"No", "Asset Name"},
		{"001", "Laptop", "extra"},
		{"002", "Monitor"},
	}

	got := padRows(rows, 1, 1)

	assert.Len(t, got, 3)
	for _, line := range got {
		assert.Len(t, line, 3)
	}
	assert.Equal(t, []string{"002", "Monitor", ""}, got[2])
}

func TestPadRows_EmptySheet(t *testing.T) {
	got := padRows([][]string{{"No"}}, 0, 0)
	assert.Equal(t, [][]string{{"No"}}, got)
}
