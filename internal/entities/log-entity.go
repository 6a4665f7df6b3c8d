package entities

type StatusLog struct {
	Timestamp string `json:"timestamp"`
	AssetID   string `json:"asset_id"`
	AssetName string `json:"asset_name"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
}

type RelocationLog struct {
	Timestamp    string `json:"timestamp"`
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	FromLocation string `json:"from_location"`
	FromRoom     string `json:"from_room"`
	ToLocation   string `json:"to_location"`
	ToRoom       string `json:"to_room"`
	MovedBy      string `json:"moved_by"`
}

type DisposalLog struct {
	Timestamp      string `json:"timestamp"`
	AssetID        string `json:"asset_id"`
	AssetName      string `json:"asset_name"`
	DisposalMethod string `json:"disposal_method"`
	DisposalValue  string `json:"disposal_value"`
	DisposedBy     string `json:"disposed_by"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
}
