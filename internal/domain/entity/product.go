package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado fabricable.
// Su costo no se guarda aquí: el costo promedio del producto terminado
// vive en su StockItem y se alimenta con las entradas PRODUCTION_IN.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta sugerido
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
