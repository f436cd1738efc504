package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, company_id, material_id, supplier, quantity, unit_price, total_price, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.CompanyID, purchase.MaterialID, purchase.Supplier,
		purchase.Quantity, purchase.UnitPrice, purchase.TotalPrice,
		purchase.Date, purchase.CreatedAt, nullIfEmpty(purchase.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, company_id, material_id, supplier, quantity, unit_price, total_price, date, created_at, created_by
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.MaterialID, &p.Supplier, &p.Quantity, &p.UnitPrice, &p.TotalPrice,
		&p.Date, &p.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}
	return &p, nil
}

// ListByMaterial lista compras de un material, más recientes primero.
func (r *PurchaseRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, company_id, material_id, supplier, quantity, unit_price, total_price, date, created_at, created_by
		FROM purchases WHERE material_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var createdBy *string
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.MaterialID, &p.Supplier, &p.Quantity, &p.UnitPrice, &p.TotalPrice,
			&p.Date, &p.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if createdBy != nil {
			p.CreatedBy = *createdBy
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
