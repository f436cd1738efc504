package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = "id, company_id, ref_type, ref_id, quantity, total_value, unit_cost, updated_at"

// GetByRef obtiene el ítem de stock; si no existe devuelve un ítem en cero.
func (r *StockItemRepo) GetByRef(companyID, refType, refID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items WHERE company_id = $1 AND ref_type = $2 AND ref_id = $3`
	return r.scanOne(companyID, refType, refID, query)
}

// GetByRefForUpdate igual que GetByRef pero bloquea la fila (SELECT FOR UPDATE).
// Si la fila aún no existe la materializa en cero antes de bloquear: sin fila
// no hay bloqueo, y dos primeras entradas concurrentes se pisarían entre sí.
func (r *StockItemRepo) GetByRefForUpdate(companyID, refType, refID string) (*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items WHERE company_id = $1 AND ref_type = $2 AND ref_id = $3
		FOR UPDATE`
	item, err := r.scanOne(companyID, refType, refID, query)
	if err != nil || item.ID != "" {
		return item, err
	}
	insert := `
		INSERT INTO stock_items (id, company_id, ref_type, ref_id, quantity, total_value, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, 0, now())
		ON CONFLICT (company_id, ref_type, ref_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, uuid.New().String(), companyID, refType, refID); err != nil {
		return nil, fmt.Errorf("init stock item: %w", err)
	}
	return r.scanOne(companyID, refType, refID, query)
}

func (r *StockItemRepo) scanOne(companyID, refType, refID, query string) (*entity.StockItem, error) {
	var s entity.StockItem
	err := r.q.QueryRow(context.Background(), query, companyID, refType, refID).Scan(
		&s.ID, &s.CompanyID, &s.RefType, &s.RefID, &s.Quantity, &s.TotalValue, &s.UnitCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockItem{
				CompanyID:  companyID,
				RefType:    refType,
				RefID:      refID,
				Quantity:   decimal.Zero,
				TotalValue: decimal.Zero,
				UnitCost:   decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza cantidad, valor total y costo promedio.
// Asigna ID si el ítem aún no existía.
func (r *StockItemRepo) Upsert(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_items (id, company_id, ref_type, ref_id, quantity, total_value, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (company_id, ref_type, ref_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, total_value = EXCLUDED.total_value,
			unit_cost = EXCLUDED.unit_cost, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.RefType, item.RefID, item.Quantity, item.TotalValue, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("upsert stock item: %w", err)
	}
	return nil
}
