package repository

import "github.com/tu-usuario/manufactura-pro/internal/domain/entity"

// StockItemRepository define el puerto para consultar/actualizar ítems de stock.
// Usado dentro de transacciones para garantizar consistencia.
type StockItemRepository interface {
	// GetByRef obtiene el ítem por (empresa, tipo de referencia, referencia).
	// Si no existe devuelve un ítem en cero (sin inicializar).
	GetByRef(companyID, refType, refID string) (*entity.StockItem, error)
	// GetByRefForUpdate igual que GetByRef pero bloquea la fila (SELECT FOR UPDATE).
	GetByRefForUpdate(companyID, refType, refID string) (*entity.StockItem, error)
	// Upsert inserta o actualiza cantidad, valor total y costo promedio.
	Upsert(item *entity.StockItem) error
}
