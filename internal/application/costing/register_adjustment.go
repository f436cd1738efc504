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

// RegisterAdjustmentUseCase registra un ajuste manual de inventario.
// Cantidad positiva entra con el costo unitario declarado (recalcula WAC);
// cantidad negativa sale al WAC vigente. Las correcciones del libro son
// siempre asientos nuevos, nunca modificaciones.
type RegisterAdjustmentUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	wac          *WACService
}

// NewRegisterAdjustmentUseCase construye el caso de uso.
func NewRegisterAdjustmentUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository, wac *WACService) *RegisterAdjustmentUseCase {
	return &RegisterAdjustmentUseCase{txRunner: txRunner, materialRepo: materialRepo, wac: wac}
}

// Execute aplica el ajuste dentro de una transacción.
func (uc *RegisterAdjustmentUseCase) Execute(ctx context.Context, companyID, userID string, in dto.RegisterAdjustmentRequest) (*dto.StockItemResponse, error) {
	if in.MaterialID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.GreaterThan(decimal.Zero) && (in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero)) {
		return nil, domain.ErrInvalidInput
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

	now := time.Now()
	var stock *entity.StockItem
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if in.Quantity.GreaterThan(decimal.Zero) {
			stock, _, err = uc.wac.ApplyEntry(repos, EntryInput{
				CompanyID: companyID,
				RefType:   entity.StockRefMaterial,
				RefID:     in.MaterialID,
				Kind:      entity.LedgerKindAdjustment,
				Quantity:  in.Quantity,
				UnitCost:  *in.UnitCost,
				Date:      now,
				CreatedBy: userID,
			})
			return err
		}
		stock, _, err = uc.wac.ApplyConsumption(repos, ConsumptionInput{
			CompanyID: companyID,
			RefType:   entity.StockRefMaterial,
			RefID:     in.MaterialID,
			Kind:      entity.LedgerKindAdjustment,
			Quantity:  in.Quantity.Neg(),
			Date:      now,
			CreatedBy: userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := StockItemToResponse(stock)
	return &resp, nil
}
