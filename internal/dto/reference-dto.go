package dto

type TypeRefDTO struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	CodeType string `json:"code_type"`
}

type ReferenceListsDTO struct {
	Categories []string     `json:"categories"`
	Types      []TypeRefDTO `json:"types"`
	Companies  []string     `json:"companies"`
	Owners     []string     `json:"owners"`
	Locations  []string     `json:"locations"`
	Rooms      []string     `json:"rooms"`
}

type AddTypeDTO struct {
	Type     string `json:"type" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type AddCompanyDTO struct {
	Company string `json:"company" validate:"required"`
	Code    string `json:"code" validate:"required,ref_code"`
}

type AddOwnerDTO struct {
	Owner string `json:"owner" validate:"required"`
	Code  string `json:"code" validate:"required,ref_code"`
}

type AddLocationDTO struct {
	Location string `json:"location" validate:"required"`
	Room     string `json:"room" validate:"required"`
}

type ReferenceCodeDTO struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Created bool   `json:"created"`
}
