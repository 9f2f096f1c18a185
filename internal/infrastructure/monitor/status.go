package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Vault      bool      `json:"vault"`
	VaultSize  int       `json:"vault_size"`
	LastCheck  time.Time `json:"last_check"`
}
