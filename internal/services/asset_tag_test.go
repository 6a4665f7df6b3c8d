package services

import (
	"testing"

	"asset-tracker/internal/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTagGenerator_Next(t *testing.T) {
	codes := TagCodes{Company: "ABC", Category: "1", Type: "5", Owner: "IT"}

	t.Run("sequence per company type and year", func(t *testing.T) {
		g := NewTagGenerator()
		assert.Equal(t, "ABC-0105.IT24.001", g.Next(codes, 2024))
		assert.Equal(t, "ABC-0105.IT24.002", g.Next(codes, 2024))
		assert.Equal(t, "ABC-0105.IT25.001", g.Next(codes, 2025))

		other := codes
		other.Owner = "HR"
		// владелец не входит в ключ счётчика
		assert.Equal(t, "ABC-0105.HR24.003", g.Next(other, 2024))
	})

	t.Run("missing code gives empty tag and keeps counter", func(t *testing.T) {
		g := NewTagGenerator()
		missing := codes
		missing.Owner = ""
		assert.Equal(t, "", g.Next(missing, 2024))
		assert.Equal(t, "ABC-0105.IT24.001", g.Next(codes, 2024))
	})

	t.Run("deterministic within a pass", func(t *testing.T) {
		run := func() []string {
			g := NewTagGenerator()
			return []string{g.Next(codes, 2024), g.Next(codes, 2023), g.Next(codes, 2024)}
		}
		assert.Equal(t, run(), run())
	})
}

func TestPadCode(t *testing.T) {
	assert.Equal(t, "05", padCode("5"))
	assert.Equal(t, "12", padCode(" 12 "))
	assert.Equal(t, "123", padCode("123"))
	assert.Equal(t, "", padCode(""))
}

func TestSyncReferences_Lookups(t *testing.T) {
	refs := BuildSyncReferences(
		[]entities.Category{{Name: "Elektronik", Code: "1", ResidualPercent: decimal.NewFromInt(10), UsefulLife: 5}},
		[]entities.AssetType{
			{Name: "Laptop", Category: "Elektronik", Code: "5"},
			{Name: "Laptop", Category: "Furniture", Code: "7"},
		},
		[]entities.Company{{Name: "PT Abadi", Code: "ABC"}},
		[]entities.Owner{{Name: "IT Department", Code: "it"}},
	)

	assert.Equal(t, "01", refs.CategoryCode(" elektronik "))
	assert.Equal(t, "05", refs.TypeCode("LAPTOP", "Elektronik"))
	assert.Equal(t, "07", refs.TypeCode("laptop", "furniture"))
	assert.Equal(t, "ABC", refs.CompanyCode("pt abadi"))
	assert.Equal(t, "it", refs.OwnerCode("IT DEPARTMENT"), "codes keep original case")

	assert.Equal(t, "", refs.CategoryCode("Unknown"))
	assert.Equal(t, "", refs.TypeCode("Laptop", "Unknown"))
	assert.Equal(t, "", refs.CompanyCode("Unknown"))

	cat, ok := refs.Category("ELEKTRONIK")
	assert.True(t, ok)
	assert.Equal(t, 5, cat.UsefulLife)
}
