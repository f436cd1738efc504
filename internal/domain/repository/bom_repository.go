package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// BOMRepository define el puerto de persistencia de la lista de materiales.
type BOMRepository interface {
	ListByProduct(productID string) ([]*entity.BOMLine, error)
	// Replace reemplaza el conjunto completo de líneas del producto.
	Replace(productID string, lines []*entity.BOMLine) error
}
