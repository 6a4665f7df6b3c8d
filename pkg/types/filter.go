package types

// AssetFilter - параметры выборки активов: ?status=&search=
type AssetFilter struct {
	Status string `json:"status" query:"status"`
	Search string `json:"search" query:"search"`
}

// UserFilter - ?role=admin|user|all
type UserFilter struct {
	Role string `json:"role" query:"role"`
}
