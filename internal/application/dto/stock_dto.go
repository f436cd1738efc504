package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitializeStockRequest body para POST /api/stock/initialize.
// Date es opcional; si se omite se usa la fecha actual. No se acepta futura.
type InitializeStockRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Date       *time.Time      `json:"date,omitempty"`
}

// RegisterPurchaseRequest body para POST /api/stock/purchases.
type RegisterPurchaseRequest struct {
	MaterialID string          `json:"material_id"`
	Supplier   string          `json:"supplier,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Date       *time.Time      `json:"date,omitempty"`
}

// RegisterAdjustmentRequest body para POST /api/stock/adjustments.
// Quantity con signo: positiva requiere unit_cost; negativa sale al WAC vigente.
type RegisterAdjustmentRequest struct {
	MaterialID string           `json:"material_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

// RegisterConsumptionRequest body para POST /api/stock/consumptions.
// Consumo de un material contra un lote real; pasa por la máquina de estados del lote.
type RegisterConsumptionRequest struct {
	LotID      string          `json:"lot_id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockItemResponse snapshot de valoración de un ítem de stock.
type StockItemResponse struct {
	ID         string          `json:"id"`
	RefType    string          `json:"ref_type"`
	RefID      string          `json:"ref_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
	UnitCost   decimal.Decimal `json:"unit_cost"` // costo promedio ponderado
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PurchaseResponse resultado de registrar una compra.
type PurchaseResponse struct {
	PurchaseID string            `json:"purchase_id"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Stock      StockItemResponse `json:"stock"`
}

// ConsumptionResponse resultado de registrar un consumo.
type ConsumptionResponse struct {
	LotID     string            `json:"lot_id"`
	TotalCost decimal.Decimal   `json:"total_cost"`
	Stock     StockItemResponse `json:"stock"`
}

// LedgerEntryResponse un asiento del libro de inventario.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	PurchaseID  string          `json:"purchase_id,omitempty"`
	LotID       string          `json:"lot_id,omitempty"`
	Date        time.Time       `json:"date"`
}

// LedgerListResponse listado de asientos con paginación.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
