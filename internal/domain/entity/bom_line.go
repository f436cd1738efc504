package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine representa una línea de la lista de materiales de un producto:
// cuánto de un material se necesita para fabricar una unidad.
// Única por par (producto, material).
type BOMLine struct {
	ID              string
	ProductID       string
	MaterialID      string
	QuantityPerUnit decimal.Decimal
	UnitMeasure     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
