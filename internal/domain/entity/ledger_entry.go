package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de inventario.
const (
	LedgerKindInit         = "INIT"          // stock inicial
	LedgerKindPurchase     = "PURCHASE"      // compra de materia prima
	LedgerKindProductionIn = "PRODUCTION_IN" // entrada de producto terminado
	LedgerKindConsumption  = "CONSUMPTION"   // consumo de materiales en producción
	LedgerKindAdjustment   = "ADJUSTMENT"    // ajuste manual (corrección)
)

// LedgerEntry representa un asiento inmutable del libro de inventario:
// un evento que afectó el stock, con cantidad con signo (positiva entrada,
// negativa salida). Nunca se actualiza ni se borra; las correcciones son
// nuevos asientos ADJUSTMENT.
type LedgerEntry struct {
	ID          string
	StockItemID string
	Kind        string
	Quantity    decimal.Decimal // con signo
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal // Quantity * UnitCost (con signo)
	PurchaseID  string          // opcional: compra que originó el asiento
	LotID       string          // opcional: lote de producción asociado
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
