package entities

import "github.com/shopspring/decimal"

type Category struct {
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	ResidualPercent decimal.Decimal `json:"residual_percent"`
	UsefulLife      int             `json:"useful_life"`
}

type AssetType struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Code     string `json:"code"`
}

type Company struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Owner struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Location struct {
	Name string `json:"name"`
	Room string `json:"room"`
}
