package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// ProductionLotRepository define el puerto de persistencia de lotes de producción.
type ProductionLotRepository interface {
	Create(lot *entity.ProductionLot) error
	GetByID(id string) (*entity.ProductionLot, error)
	// GetByIDForUpdate bloquea la fila del lote para la transición de estado.
	GetByIDForUpdate(id string) (*entity.ProductionLot, error)
	GetByCode(companyID, productID, lotCode string) (*entity.ProductionLot, error)
	Update(lot *entity.ProductionLot) error
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.ProductionLot, error)
}
