package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de la lista de materiales sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListByProduct lista las líneas de la BOM de un producto.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BOMLine, error) {
	query := `
		SELECT id, product_id, material_id, quantity_per_unit, unit_measure, created_at, updated_at
		FROM bom_lines WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.MaterialID, &l.QuantityPerUnit, &l.UnitMeasure, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Replace reemplaza el conjunto completo de líneas del producto.
// Debe ejecutarse dentro de una transacción (el Querier debe ser una tx).
func (r *BOMRepo) Replace(productID string, lines []*entity.BOMLine) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM bom_lines WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete bom lines: %w", err)
	}
	query := `
		INSERT INTO bom_lines (id, product_id, material_id, quantity_per_unit, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.ID, l.ProductID, l.MaterialID, l.QuantityPerUnit, l.UnitMeasure, l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert bom line: %w", err)
		}
	}
	return nil
}
