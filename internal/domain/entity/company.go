package entity

import "time"

// Company representa una empresa (tenant). Todo material, producto y lote
// pertenece a exactamente una empresa.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT o identificación tributaria
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
