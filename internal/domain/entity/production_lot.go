package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del lote de producción. Las transiciones válidas son
// PLANNED -> IN_PROGRESS (consumo de materiales) y
// IN_PROGRESS -> COMPLETED (cierre con cantidad producida).
// COMPLETED es terminal: un lote cerrado no se reabre.
const (
	LotStatusPlanned    = "PLANNED"
	LotStatusInProgress = "IN_PROGRESS"
	LotStatusCompleted  = "COMPLETED"
)

// ProductionLot representa un lote de fabricación de un producto.
// UnitCost y TotalCost quedan nulos (cero) hasta COMPLETED, momento en el
// que se congelan junto con ProducedQuantity y EndDate.
type ProductionLot struct {
	ID               string
	CompanyID        string
	ProductID        string
	LotCode          string // único por empresa+producto
	PlannedQuantity  decimal.Decimal
	ProducedQuantity decimal.Decimal
	Status           string
	StartDate        *time.Time
	EndDate          *time.Time
	UnitCost         *decimal.Decimal
	TotalCost        *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanConsume indica si el lote admite consumo de materiales.
func (l *ProductionLot) CanConsume() bool {
	return l.Status == LotStatusPlanned || l.Status == LotStatusInProgress
}

// CanFinish indica si el lote puede cerrarse.
func (l *ProductionLot) CanFinish() bool {
	return l.Status == LotStatusInProgress
}
