package dto

type SyncResultDTO struct {
	Success    bool   `json:"success"`
	Updated    int    `json:"updated"`
	Renumbered int    `json:"renumbered"`
	Message    string `json:"message"`
	State      string `json:"state"`
}
