package entity

import "time"

// Material representa una materia prima del catálogo.
// No lleva cantidad, valor ni costo: el estado de valoración vive
// exclusivamente en StockItem y se mueve a través del libro de inventario.
type Material struct {
	ID          string
	CompanyID   string
	Code        string // código único por empresa
	Name        string
	Description string
	UnitMeasure string // kg, m, und, lt...
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
