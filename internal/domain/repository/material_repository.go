package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// MaterialRepository define el puerto de persistencia del catálogo de materias primas.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Material, error)
}
