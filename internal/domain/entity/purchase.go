package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra de materia prima. Su asiento en el libro
// de inventario la referencia por PurchaseID.
type Purchase struct {
	ID         string
	CompanyID  string
	MaterialID string
	Supplier   string // referencia libre del proveedor
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Date       time.Time
	CreatedAt  time.Time
	CreatedBy  string
}
