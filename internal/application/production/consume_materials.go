package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// ConsumeMaterialsUseCase descuenta materiales para un lote de producción.
// Dispara la transición PLANNED -> IN_PROGRESS. La disponibilidad de TODAS
// las líneas se verifica antes de aplicar cualquier descuento: si una sola
// falla, la transacción completa se revierte sin consumos parciales.
type ConsumeMaterialsUseCase struct {
	txRunner costing.TxRunner
	wac      *costing.WACService
}

// NewConsumeMaterialsUseCase construye el caso de uso.
func NewConsumeMaterialsUseCase(txRunner costing.TxRunner, wac *costing.WACService) *ConsumeMaterialsUseCase {
	return &ConsumeMaterialsUseCase{txRunner: txRunner, wac: wac}
}

type consumeLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// Execute aplica el consumo en una sola transacción que abarca el lote y
// todos los ítems de stock involucrados (cada fila bloqueada con FOR UPDATE),
// de modo que una compra concurrente no pueda invalidar la verificación.
func (uc *ConsumeMaterialsUseCase) Execute(ctx context.Context, companyID, userID, lotID string, in dto.ConsumeMaterialsRequest) (*dto.LotDetailResponse, error) {
	if lotID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.UseBOM && len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		lot          *entity.ProductionLot
		consumptions []*entity.LotConsumption
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
		if !lot.CanConsume() {
			return domain.ErrLotState
		}

		bomLines, err := repos.BOM.ListByProduct(lot.ProductID)
		if err != nil {
			return err
		}
		reqs := ResolveRequirements(bomLines, lot.PlannedQuantity)

		lines, err := buildConsumeLines(in, reqs, lot.Status)
		if err != nil {
			return err
		}

		// Fase 1: verificar disponibilidad de TODAS las líneas antes de
		// descontar una sola unidad. Los bloqueos de fila quedan tomados
		// hasta el commit.
		for _, line := range lines {
			stock, err := repos.Stock.GetByRefForUpdate(companyID, entity.StockRefMaterial, line.MaterialID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(line.Quantity) {
				return domain.ErrInsufficientStock
			}
		}

		// Fase 2: aplicar los descuentos al WAC vigente y registrar consumos.
		for _, line := range lines {
			_, ledger, err := uc.wac.ApplyConsumption(repos, costing.ConsumptionInput{
				CompanyID: companyID,
				RefType:   entity.StockRefMaterial,
				RefID:     line.MaterialID,
				Kind:      entity.LedgerKindConsumption,
				Quantity:  line.Quantity,
				LotID:     lot.ID,
				Date:      now,
				CreatedBy: userID,
			})
			if err != nil {
				return err
			}
			consumption := &entity.LotConsumption{
				ID:         uuid.New().String(),
				LotID:      lot.ID,
				MaterialID: line.MaterialID,
				Quantity:   line.Quantity,
				UnitCost:   ledger.UnitCost,
				TotalCost:  ledger.TotalCost.Neg(),
				CreatedAt:  now,
				CreatedBy:  userID,
			}
			if err := repos.Consumptions.Create(consumption); err != nil {
				return err
			}
			consumptions = append(consumptions, consumption)
		}

		if lot.Status == entity.LotStatusPlanned {
			lot.Status = entity.LotStatusInProgress
		}
		if lot.StartDate == nil {
			lot.StartDate = &now
		}
		lot.UpdatedAt = now
		return repos.Lots.Update(lot)
	})
	if err != nil {
		return nil, err
	}

	return &dto.LotDetailResponse{
		Lot:          LotToResponse(lot),
		Consumptions: ConsumptionsToResponse(consumptions),
	}, nil
}

// buildConsumeLines arma las líneas a consumir.
// En modo BOM se consume exactamente lo requerido para la cantidad planificada.
// En modo explícito, sobre un lote PLANNED toda línea de la BOM debe quedar
// cubierta (cantidad >= requerida): no se permite subconsumo silencioso en la
// transición. Sobre un lote ya IN_PROGRESS las líneas explícitas son libres.
func buildConsumeLines(in dto.ConsumeMaterialsRequest, reqs []Requirement, lotStatus string) ([]consumeLine, error) {
	if in.UseBOM {
		if len(reqs) == 0 {
			return nil, domain.ErrInvalidInput
		}
		lines := make([]consumeLine, 0, len(reqs))
		for _, r := range reqs {
			lines = append(lines, consumeLine{MaterialID: r.MaterialID, Quantity: r.Quantity})
		}
		return lines, nil
	}

	seen := make(map[string]decimal.Decimal, len(in.Lines))
	lines := make([]consumeLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[l.MaterialID]; dup {
			return nil, domain.ErrInvalidInput
		}
		seen[l.MaterialID] = l.Quantity
		lines = append(lines, consumeLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}

	if lotStatus == entity.LotStatusPlanned {
		for _, r := range reqs {
			qty, ok := seen[r.MaterialID]
			if !ok || qty.LessThan(r.Quantity) {
				return nil, domain.ErrInvalidInput
			}
		}
	}
	return lines, nil
}

// ConsumptionsToResponse convierte consumos a DTO.
func ConsumptionsToResponse(list []*entity.LotConsumption) []dto.LotConsumptionResponse {
	out := make([]dto.LotConsumptionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.LotConsumptionResponse{
			MaterialID: c.MaterialID,
			Quantity:   c.Quantity,
			UnitCost:   c.UnitCost,
			TotalCost:  c.TotalCost,
			CreatedAt:  c.CreatedAt,
		})
	}
	return out
}
