package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type DepreciationInput struct {
	PurchaseCost    decimal.Decimal
	ResidualPercent decimal.Decimal
	UsefulLife      int
	PurchaseYear    int
	CurrentYear     int
}

type DepreciationResult struct {
	ResidualValue       decimal.Decimal
	DepreciationPerYear decimal.Decimal
	BookValue           decimal.Decimal
}

// CalculateDepreciation - линейная амортизация, округление до копеек половиной вверх.
// Балансовая стоимость не опускается ниже остаточной. Процент остатка
// приводится к диапазону [0, 100].
func CalculateDepreciation(in DepreciationInput) DepreciationResult {
	percent := decimal.Max(decimal.Zero, decimal.Min(in.ResidualPercent, hundred))
	residual := in.PurchaseCost.Mul(percent).Div(hundred).Round(2)

	perYear := decimal.Zero
	if in.UsefulLife > 0 {
		perYear = in.PurchaseCost.Sub(residual).Div(decimal.NewFromInt(int64(in.UsefulLife))).Round(2)
	}

	age := max(0, in.CurrentYear-in.PurchaseYear)
	book := in.PurchaseCost.Sub(perYear.Mul(decimal.NewFromInt(int64(age)))).Round(2)
	if book.LessThan(residual) {
		book = residual
	}

	return DepreciationResult{
		ResidualValue:       residual,
		DepreciationPerYear: perYear,
		BookValue:           book,
	}
}

var moneyReplacer = strings.NewReplacer(",", "", "Rp", "", " ", "", "\u00a0", "")

// ParseMoney разбирает "Rp 1,500,000". Нераспознанное значение даёт 0 и false.
func ParseMoney(s string) (decimal.Decimal, bool) {
	s = moneyReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
