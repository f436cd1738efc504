package production

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// Requirement cantidad requerida de un material para un lote.
type Requirement struct {
	MaterialID  string
	Quantity    decimal.Decimal
	UnitMeasure string
}

// ResolveRequirements expande la lista de materiales para una cantidad
// planificada: requerido = cantidadPorUnidad * planificada, conservando la
// unidad de medida de cada línea. Función pura: no toca stock.
func ResolveRequirements(lines []*entity.BOMLine, plannedQuantity decimal.Decimal) []Requirement {
	reqs := make([]Requirement, 0, len(lines))
	for _, line := range lines {
		reqs = append(reqs, Requirement{
			MaterialID:  line.MaterialID,
			Quantity:    line.QuantityPerUnit.Mul(plannedQuantity),
			UnitMeasure: line.UnitMeasure,
		})
	}
	return reqs
}
