package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotConsumption representa el consumo de un material en un lote:
// cantidad y costo unitario (WAC vigente al momento del consumo).
// Inmutable una vez creado; alimenta el costeo final del lote.
type LotConsumption struct {
	ID         string
	LotID      string
	MaterialID string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
	CreatedBy  string
}
