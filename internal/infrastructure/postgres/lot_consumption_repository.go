package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

var _ repository.LotConsumptionRepository = (*LotConsumptionRepo)(nil)

// LotConsumptionRepo implementación de LotConsumptionRepository sobre PostgreSQL.
// Los consumos son inmutables: solo INSERT y SELECT.
type LotConsumptionRepo struct {
	q Querier
}

// NewLotConsumptionRepository construye el adaptador.
func NewLotConsumptionRepository(q Querier) *LotConsumptionRepo {
	return &LotConsumptionRepo{q: q}
}

// Create persiste un consumo de material de un lote.
func (r *LotConsumptionRepo) Create(c *entity.LotConsumption) error {
	query := `
		INSERT INTO lot_consumptions (id, lot_id, material_id, quantity, unit_cost, total_cost, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.LotID, c.MaterialID, c.Quantity, c.UnitCost, c.TotalCost, c.CreatedAt, nullIfEmpty(c.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create lot consumption: %w", err)
	}
	return nil
}

// ListByLot lista los consumos de un lote en orden cronológico.
func (r *LotConsumptionRepo) ListByLot(lotID string) ([]*entity.LotConsumption, error) {
	query := `
		SELECT id, lot_id, material_id, quantity, unit_cost, total_cost, created_at, created_by
		FROM lot_consumptions
		WHERE lot_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, lotID)
	if err != nil {
		return nil, fmt.Errorf("list lot consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotConsumption
	for rows.Next() {
		var c entity.LotConsumption
		// created_by es UUID nullable: se escanea vía puntero.
		var createdBy *string
		if err := rows.Scan(&c.ID, &c.LotID, &c.MaterialID, &c.Quantity, &c.UnitCost, &c.TotalCost, &c.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan lot consumption: %w", err)
		}
		if createdBy != nil {
			c.CreatedBy = *createdBy
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
