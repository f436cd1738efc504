package repository

import (
	"time"

	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del libro de inventario.
// Solo inserta y consulta: los asientos nunca se actualizan ni se borran.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	ListByStockItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	ListByLot(lotID string) ([]*entity.LedgerEntry, error)
}
