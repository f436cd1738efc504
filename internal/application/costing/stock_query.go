package costing

import (
	"context"
	"time"

	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura: snapshot del ítem y su libro.
// No abre transacción; lee con los repositorios atados al pool.
type StockQueryUseCase struct {
	stockRepo    repository.StockItemRepository
	ledgerRepo   repository.LedgerRepository
	materialRepo repository.MaterialRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stockRepo repository.StockItemRepository, ledgerRepo repository.LedgerRepository, materialRepo repository.MaterialRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, ledgerRepo: ledgerRepo, materialRepo: materialRepo}
}

// GetStock devuelve el snapshot de valoración del material.
func (uc *StockQueryUseCase) GetStock(ctx context.Context, companyID, materialID string) (*dto.StockItemResponse, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	stock, err := uc.stockRepo.GetByRef(companyID, entity.StockRefMaterial, materialID)
	if err != nil {
		return nil, err
	}
	resp := StockItemToResponse(stock)
	return &resp, nil
}

// ListLedger devuelve los asientos del material en un rango de fechas,
// más recientes primero. Superficie de auditoría del libro de inventario.
func (uc *StockQueryUseCase) ListLedger(ctx context.Context, companyID, materialID string, from, to *time.Time, limit, offset int) (*dto.LedgerListResponse, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	stock, err := uc.stockRepo.GetByRef(companyID, entity.StockRefMaterial, materialID)
	if err != nil {
		return nil, err
	}
	if stock.ID == "" {
		// Sin movimientos todavía
		return &dto.LedgerListResponse{Items: []dto.LedgerEntryResponse{}, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
	}
	entries, err := uc.ledgerRepo.ListByStockItem(stock.ID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.LedgerEntryResponse{
			ID:          e.ID,
			StockItemID: e.StockItemID,
			Kind:        e.Kind,
			Quantity:    e.Quantity,
			UnitCost:    e.UnitCost,
			TotalCost:   e.TotalCost,
			PurchaseID:  e.PurchaseID,
			LotID:       e.LotID,
			Date:        e.Date,
		})
	}
	return &dto.LedgerListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}
