package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

var _ repository.ProductionLotRepository = (*ProductionLotRepo)(nil)

// ProductionLotRepo implementación de ProductionLotRepository sobre PostgreSQL.
type ProductionLotRepo struct {
	q Querier
}

// NewProductionLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLotRepository(q Querier) *ProductionLotRepo {
	return &ProductionLotRepo{q: q}
}

const lotColumns = "id, company_id, product_id, lot_code, planned_quantity, produced_quantity, status, start_date, end_date, unit_cost, total_cost, created_at, updated_at"

// Create persiste un lote. Devuelve domain.ErrDuplicate si el código de lote
// ya existe para la empresa+producto.
func (r *ProductionLotRepo) Create(lot *entity.ProductionLot) error {
	query := `
		INSERT INTO production_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.CompanyID, lot.ProductID, lot.LotCode, lot.PlannedQuantity, lot.ProducedQuantity,
		lot.Status, lot.StartDate, lot.EndDate, lot.UnitCost, lot.TotalCost, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create production lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *ProductionLotRepo) GetByID(id string) (*entity.ProductionLot, error) {
	query := `SELECT ` + lotColumns + ` FROM production_lots WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene un lote y bloquea su fila (SELECT FOR UPDATE)
// para la transición de estado.
func (r *ProductionLotRepo) GetByIDForUpdate(id string) (*entity.ProductionLot, error) {
	query := `SELECT ` + lotColumns + ` FROM production_lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetByCode obtiene un lote por (empresa, producto, código).
func (r *ProductionLotRepo) GetByCode(companyID, productID, lotCode string) (*entity.ProductionLot, error) {
	query := `SELECT ` + lotColumns + ` FROM production_lots WHERE company_id = $1 AND product_id = $2 AND lot_code = $3`
	return r.scanOne(query, companyID, productID, lotCode)
}

func (r *ProductionLotRepo) scanOne(query string, args ...any) (*entity.ProductionLot, error) {
	var l entity.ProductionLot
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.CompanyID, &l.ProductID, &l.LotCode, &l.PlannedQuantity, &l.ProducedQuantity,
		&l.Status, &l.StartDate, &l.EndDate, &l.UnitCost, &l.TotalCost, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production lot: %w", err)
	}
	return &l, nil
}

// Update actualiza estado, fechas, cantidad producida y costos del lote.
func (r *ProductionLotRepo) Update(lot *entity.ProductionLot) error {
	query := `
		UPDATE production_lots
		SET produced_quantity = $2, status = $3, start_date = $4, end_date = $5,
			unit_cost = $6, total_cost = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProducedQuantity, lot.Status, lot.StartDate, lot.EndDate,
		lot.UnitCost, lot.TotalCost, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production lot: %w", err)
	}
	return nil
}

// ListByCompany lista lotes de una empresa, con filtro opcional por estado.
func (r *ProductionLotRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.ProductionLot, error) {
	query := `SELECT ` + lotColumns + ` FROM production_lots WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionLot
	for rows.Next() {
		var l entity.ProductionLot
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.LotCode, &l.PlannedQuantity, &l.ProducedQuantity,
			&l.Status, &l.StartDate, &l.EndDate, &l.UnitCost, &l.TotalCost, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
