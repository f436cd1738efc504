package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
)

// Ensure TxRunner implements costing.TxRunner.
var _ costing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos FOR UPDATE tomados por los repos viven hasta el Commit/Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos costing.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := costing.TxRepos{
		Stock:        NewStockItemRepository(tx),
		Ledger:       NewLedgerRepository(tx),
		Purchases:    NewPurchaseRepository(tx),
		Lots:         NewProductionLotRepository(tx),
		Consumptions: NewLotConsumptionRepository(tx),
		BOM:          NewBOMRepository(tx),
		Products:     NewProductRepository(tx),
		Materials:    NewMaterialRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
