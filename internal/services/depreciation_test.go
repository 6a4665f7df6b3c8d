package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateDepreciation(t *testing.T) {
	testCases := []struct {
		name         string
		in           DepreciationInput
		wantResidual string
		wantPerYear  string
		wantBook     string
	}{
		{
			name:         "reference example",
			in:           DepreciationInput{PurchaseCost: dec("1000000"), ResidualPercent: dec("10"), UsefulLife: 5, PurchaseYear: 2023, CurrentYear: 2025},
			wantResidual: "100000.00",
			wantPerYear:  "180000.00",
			wantBook:     "640000.00",
		},
		{
			name:         "zero useful life",
			in:           DepreciationInput{PurchaseCost: dec("500000"), ResidualPercent: dec("20"), UsefulLife: 0, PurchaseYear: 2020, CurrentYear: 2025},
			wantResidual: "100000.00",
			wantPerYear:  "0.00",
			wantBook:     "500000.00",
		},
		{
			name:         "book value floored at residual",
			in:           DepreciationInput{PurchaseCost: dec("1000000"), ResidualPercent: dec("10"), UsefulLife: 2, PurchaseYear: 2015, CurrentYear: 2025},
			wantResidual: "100000.00",
			wantPerYear:  "450000.00",
			wantBook:     "100000.00",
		},
		{
			name:         "purchase in the future counts as age zero",
			in:           DepreciationInput{PurchaseCost: dec("1200"), ResidualPercent: dec("0"), UsefulLife: 3, PurchaseYear: 2027, CurrentYear: 2025},
			wantResidual: "0.00",
			wantPerYear:  "400.00",
			wantBook:     "1200.00",
		},
		{
			name:         "rounding half up",
			in:           DepreciationInput{PurchaseCost: dec("10.05"), ResidualPercent: dec("50"), UsefulLife: 1, PurchaseYear: 2025, CurrentYear: 2025},
			wantResidual: "5.03",
			wantPerYear:  "5.02",
			wantBook:     "10.05",
		},
		{
			name:         "residual percent above 100 is capped",
			in:           DepreciationInput{PurchaseCost: dec("1000"), ResidualPercent: dec("150"), UsefulLife: 5, PurchaseYear: 2020, CurrentYear: 2025},
			wantResidual: "1000.00",
			wantPerYear:  "0.00",
			wantBook:     "1000.00",
		},
		{
			name:         "negative residual percent counts as zero",
			in:           DepreciationInput{PurchaseCost: dec("1000"), ResidualPercent: dec("-20"), UsefulLife: 5, PurchaseYear: 2024, CurrentYear: 2025},
			wantResidual: "0.00",
			wantPerYear:  "200.00",
			wantBook:     "800.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := CalculateDepreciation(tc.in)
			assert.Equal(t, tc.wantResidual, res.ResidualValue.StringFixed(2))
			assert.Equal(t, tc.wantPerYear, res.DepreciationPerYear.StringFixed(2))
			assert.Equal(t, tc.wantBook, res.BookValue.StringFixed(2))

			assert.True(t, res.ResidualValue.LessThanOrEqual(tc.in.PurchaseCost))
			assert.False(t, res.DepreciationPerYear.IsNegative())
		})
	}
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1000000", "1000000", true},
		{"Rp 1,500,000", "1500000", true},
		{"Rp1,250.50", "1250.5", true},
		{" 2 000 ", "2000", true},
		{"", "0", false},
		{"abc", "0", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseMoney(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got.String())
		})
	}
}
