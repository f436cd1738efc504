package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// FinishLotUseCase cierra un lote IN_PROGRESS: congela cantidad producida,
// costo total (consumos + costos extra) y costo unitario, y acredita el
// producto terminado como entrada PRODUCTION_IN en su ítem de stock.
// Todo en una transacción: el lote no puede quedar COMPLETED sin su entrada.
type FinishLotUseCase struct {
	txRunner costing.TxRunner
	wac      *costing.WACService
}

// NewFinishLotUseCase construye el caso de uso.
func NewFinishLotUseCase(txRunner costing.TxRunner, wac *costing.WACService) *FinishLotUseCase {
	return &FinishLotUseCase{txRunner: txRunner, wac: wac}
}

// Execute valida y cierra el lote. COMPLETED es terminal.
func (uc *FinishLotUseCase) Execute(ctx context.Context, companyID, userID, lotID string, in dto.FinishLotRequest) (*dto.FinishLotResponse, error) {
	if lotID == "" || !in.ProducedQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	extra := decimal.Zero
	if in.ExtraCosts != nil {
		for _, c := range []decimal.Decimal{in.ExtraCosts.Labor, in.ExtraCosts.Machine, in.ExtraCosts.Overhead, in.ExtraCosts.Other} {
			if c.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			extra = extra.Add(c)
		}
	}

	now := time.Now()
	var (
		lot          *entity.ProductionLot
		productStock *entity.StockItem
	)

	err := uc.txRunner.Run(ctx, func(repos costing.TxRepos) error {
		var err error
		lot, err = repos.Lots.GetByIDForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !lot.CanFinish() {
			return domain.ErrLotState
		}

		consumptions, err := repos.Consumptions.ListByLot(lot.ID)
		if err != nil {
			return err
		}
		totalCost := extra
		for _, c := range consumptions {
			totalCost = totalCost.Add(c.TotalCost)
		}
		unitCost := totalCost.Div(in.ProducedQuantity)

		productStock, _, err = uc.wac.ApplyEntry(repos, costing.EntryInput{
			CompanyID: companyID,
			RefType:   entity.StockRefProduct,
			RefID:     lot.ProductID,
			Kind:      entity.LedgerKindProductionIn,
			Quantity:  in.ProducedQuantity,
			UnitCost:  unitCost,
			LotID:     lot.ID,
			Date:      now,
			CreatedBy: userID,
		})
		if err != nil {
			return err
		}

		lot.ProducedQuantity = in.ProducedQuantity
		lot.UnitCost = &unitCost
		lot.TotalCost = &totalCost
		lot.EndDate = &now
		lot.Status = entity.LotStatusCompleted
		lot.UpdatedAt = now
		return repos.Lots.Update(lot)
	})
	if err != nil {
		return nil, err
	}

	return &dto.FinishLotResponse{
		Lot:          LotToResponse(lot),
		ProductStock: costing.StockItemToResponse(productStock),
	}, nil
}
