package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// LotConsumptionRepository define el puerto de persistencia de consumos por lote.
// Solo inserta y consulta: los consumos son inmutables.
type LotConsumptionRepository interface {
	Create(consumption *entity.LotConsumption) error
	ListByLot(lotID string) ([]*entity.LotConsumption, error)
}
