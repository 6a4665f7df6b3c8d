package entities

// Asset - строка листа Assets. Все значения хранятся строками, как в таблице;
// производные поля пересчитываются синхронизацией.
type Asset struct {
	Row int `json:"-"`

	ID           string `json:"id"`
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	Type         string `json:"type"`
	Manufacture  string `json:"manufacture"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	AssetTag     string `json:"asset_tag"`
	Company      string `json:"company"`
	BisnisUnit   string `json:"bisnis_unit"`
	Location     string `json:"location"`
	RoomLocation string `json:"room_location"`
	Notes        string `json:"notes"`
	Condition    string `json:"condition"`
	PurchaseDate string `json:"purchase_date"`
	PurchaseCost string `json:"purchase_cost"`
	Warranty     string `json:"warranty"`
	Supplier     string `json:"supplier"`
	Journal      string `json:"journal"`
	Owner        string `json:"owner"`
	Status       string `json:"status"`

	CodeCategory      string `json:"code_category"`
	CodeCompany       string `json:"code_company"`
	CodeType          string `json:"code_type"`
	CodeOwner         string `json:"code_owner"`
	Tahun             string `json:"tahun"`
	ResidualPercent   string `json:"residual_percent"`
	UsefulLife        string `json:"useful_life"`
	ResidualValue     string `json:"residual_value"`
	DepreciationValue string `json:"depreciation_value"`
	BookValue         string `json:"book_value"`
}
