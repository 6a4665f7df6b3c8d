package dto

type CreateAssetDTO struct {
	ItemName     string `json:"item_name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Manufacture  string `json:"manufacture"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Company      string `json:"company" validate:"required"`
	CodeCompany  string `json:"code_company" validate:"ref_code"`
	BisnisUnit   string `json:"bisnis_unit"`
	Location     string `json:"location" validate:"required"`
	RoomLocation string `json:"room_location" validate:"required"`
	Notes        string `json:"notes"`
	Condition    string `json:"condition"`
	PurchaseDate string `json:"purchase_date" validate:"iso_date"`
	PurchaseCost string `json:"purchase_cost" validate:"money"`
	Warranty     string `json:"warranty"`
	Supplier     string `json:"supplier"`
	Journal      string `json:"journal"`
	Owner        string `json:"owner" validate:"required"`
	CodeOwner    string `json:"code_owner" validate:"ref_code"`
}

type ChangeStatusDTO struct {
	Status string `json:"status" validate:"required,asset_status"`
}

type RelocateAssetDTO struct {
	AssetID    string `json:"asset_id" validate:"required"`
	ToLocation string `json:"to_location" validate:"required"`
	ToRoom     string `json:"to_room" validate:"required"`
}

type DisposeAssetDTO struct {
	DisposalMethod string `json:"disposal_method" validate:"required"`
	DisposalValue  string `json:"disposal_value" validate:"money"`
	Notes          string `json:"notes"`
}

type DashboardEntryDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DashboardDTO struct {
	Status     string              `json:"status"`
	Total      int                 `json:"total"`
	ByCategory []DashboardEntryDTO `json:"by_category"`
	ByYear     []DashboardEntryDTO `json:"by_year"`
}
