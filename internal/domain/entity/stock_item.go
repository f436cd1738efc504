package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de referencia de un StockItem: materia prima o producto terminado.
const (
	StockRefMaterial = "MATERIAL"
	StockRefProduct  = "PRODUCT"
)

// StockItem representa el estado de valoración de una línea de inventario:
// cantidad disponible, valor total y costo promedio ponderado (WAC).
// Es la única fuente de verdad de cantidad/valor/costo; solo el servicio WAC
// lo muta, siempre dentro de una transacción con bloqueo de fila.
//
// Invariantes: Quantity >= 0, TotalValue >= 0 y
// TotalValue ≈ Quantity * UnitCost (tolerancia de redondeo decimal).
type StockItem struct {
	ID         string
	CompanyID  string
	RefType    string // MATERIAL | PRODUCT
	RefID      string // MaterialID o ProductID según RefType
	Quantity   decimal.Decimal
	TotalValue decimal.Decimal
	UnitCost   decimal.Decimal // costo promedio ponderado vigente
	UpdatedAt  time.Time
}

// IsInitialized indica si el ítem ya recibió su primera entrada (INIT o PURCHASE).
func (s *StockItem) IsInitialized() bool {
	return !s.Quantity.IsZero() || !s.TotalValue.IsZero() || !s.UnitCost.IsZero()
}
