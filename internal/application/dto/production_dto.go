package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/lots.
type CreateLotRequest struct {
	ProductID       string          `json:"product_id"`
	LotCode         string          `json:"lot_code"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
}

// ConsumeLineRequest una línea de consumo explícito (material, cantidad).
type ConsumeLineRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ConsumeMaterialsRequest body para POST /api/lots/:id/consumptions.
// use_bom=true consume exactamente lo que la lista de materiales requiere
// para la cantidad planificada; si no, se envían líneas explícitas.
type ConsumeMaterialsRequest struct {
	UseBOM bool                 `json:"use_bom"`
	Lines  []ConsumeLineRequest `json:"lines,omitempty"`
}

// ExtraCostsRequest costos adicionales declarados al cerrar el lote.
type ExtraCostsRequest struct {
	Labor    decimal.Decimal `json:"labor"`
	Machine  decimal.Decimal `json:"machine"`
	Overhead decimal.Decimal `json:"overhead"`
	Other    decimal.Decimal `json:"other"`
}

// FinishLotRequest body para POST /api/lots/:id/finish.
type FinishLotRequest struct {
	ProducedQuantity decimal.Decimal    `json:"produced_quantity"`
	ExtraCosts       *ExtraCostsRequest `json:"extra_costs,omitempty"`
}

// RequirementResponse cantidad requerida de un material según la BOM.
type RequirementResponse struct {
	MaterialID  string          `json:"material_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unit_measure"`
}

// LotResponse resumen de un lote de producción.
type LotResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	LotCode          string           `json:"lot_code"`
	PlannedQuantity  decimal.Decimal  `json:"planned_quantity"`
	ProducedQuantity decimal.Decimal  `json:"produced_quantity"`
	Status           string           `json:"status"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost        *decimal.Decimal `json:"total_cost,omitempty"`
}

// CreateLotResponse lote creado junto con los requerimientos resueltos de la BOM.
type CreateLotResponse struct {
	Lot          LotResponse           `json:"lot"`
	Requirements []RequirementResponse `json:"requirements"`
}

// LotConsumptionResponse un consumo registrado en el lote.
type LotConsumptionResponse struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LotDetailResponse lote con sus consumos.
type LotDetailResponse struct {
	Lot          LotResponse              `json:"lot"`
	Consumptions []LotConsumptionResponse `json:"consumptions"`
}

// FinishLotResponse resultado del cierre del lote.
type FinishLotResponse struct {
	Lot          LotResponse       `json:"lot"`
	ProductStock StockItemResponse `json:"product_stock"`
}

// BOMLineRequest una línea para PUT /api/products/:id/bom.
type BOMLineRequest struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	UnitMeasure     string          `json:"unit_measure"`
}

// UpsertBOMRequest reemplaza la lista de materiales completa del producto.
type UpsertBOMRequest struct {
	Lines []BOMLineRequest `json:"lines"`
}

// BOMResponse lista de materiales de un producto, con requerimientos opcionales.
type BOMResponse struct {
	ProductID    string                `json:"product_id"`
	Lines        []BOMLineRequest      `json:"lines"`
	Requirements []RequirementResponse `json:"requirements,omitempty"`
}
