package costing

import (
	"context"

	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que el motor de costeo toca en una operación atómica pasa por aquí.
type TxRepos struct {
	Stock        repository.StockItemRepository
	Ledger       repository.LedgerRepository
	Purchases    repository.PurchaseRepository
	Lots         repository.ProductionLotRepository
	Consumptions repository.LotConsumptionRepository
	BOM          repository.BOMRepository
	Products     repository.ProductRepository
	Materials    repository.MaterialRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de costeo:
// cualquier error dentro de fn revierte todos los cambios.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
