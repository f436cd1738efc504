package costing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// InitializeStockUseCase registra el stock inicial de un material.
// Es un evento único: si el material ya tiene cantidad, valor o costo,
// se rechaza con ErrAlreadyInitialized y las adiciones posteriores deben
// entrar por compra.
type InitializeStockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	wac          *WACService
}

// NewInitializeStockUseCase construye el caso de uso.
func NewInitializeStockUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository, wac *WACService) *InitializeStockUseCase {
	return &InitializeStockUseCase{txRunner: txRunner, materialRepo: materialRepo, wac: wac}
}

// Execute valida la entrada, verifica el material y aplica la entrada INIT
// dentro de una transacción. Devuelve el snapshot resultante del ítem.
func (uc *InitializeStockUseCase) Execute(ctx context.Context, companyID, userID string, in dto.InitializeStockRequest) (*dto.StockItemResponse, error) {
	if in.MaterialID == "" || !in.Quantity.GreaterThan(decimal.Zero) || !in.UnitCost.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := now
	if in.Date != nil {
		if in.Date.After(now) {
			return nil, domain.ErrInvalidInput
		}
		date = *in.Date
	}

	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	var result *entity.StockItem
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		stock, err := repos.Stock.GetByRefForUpdate(companyID, entity.StockRefMaterial, in.MaterialID)
		if err != nil {
			return err
		}
		if stock.IsInitialized() {
			return domain.ErrAlreadyInitialized
		}
		result, _, err = uc.wac.ApplyEntry(repos, EntryInput{
			CompanyID: companyID,
			RefType:   entity.StockRefMaterial,
			RefID:     in.MaterialID,
			Kind:      entity.LedgerKindInit,
			Quantity:  in.Quantity,
			UnitCost:  in.UnitCost,
			Date:      date,
			CreatedBy: userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := StockItemToResponse(result)
	return &resp, nil
}

// StockItemToResponse convierte la entidad al DTO de respuesta.
func StockItemToResponse(s *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:         s.ID,
		RefType:    s.RefType,
		RefID:      s.RefID,
		Quantity:   s.Quantity,
		TotalValue: s.TotalValue,
		UnitCost:   s.UnitCost,
		UpdatedAt:  s.UpdatedAt,
	}
}
