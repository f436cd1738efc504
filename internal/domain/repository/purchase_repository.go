package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia de compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	ListByMaterial(materialID string, limit, offset int) ([]*entity.Purchase, error)
}
