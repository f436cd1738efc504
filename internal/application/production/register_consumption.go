package production

import (
	"context"

	"github.com/tu-usuario/manufactura-pro/internal/application/costing"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// RegisterConsumptionUseCase registra un consumo suelto de un material.
// Unificado con la máquina de estados del lote: exige un lote real en estado
// consumible y delega en ConsumeMaterials con una línea explícita, de modo
// que no existan consumos por fuera del ciclo de producción.
type RegisterConsumptionUseCase struct {
	consume   *ConsumeMaterialsUseCase
	stockRepo repository.StockItemRepository
}

// NewRegisterConsumptionUseCase construye el caso de uso.
func NewRegisterConsumptionUseCase(consume *ConsumeMaterialsUseCase, stockRepo repository.StockItemRepository) *RegisterConsumptionUseCase {
	return &RegisterConsumptionUseCase{consume: consume, stockRepo: stockRepo}
}

// Execute valida y delega. Devuelve el costo total del consumo y el snapshot
// resultante del ítem de stock (cantidad y valor nuevos).
func (uc *RegisterConsumptionUseCase) Execute(ctx context.Context, companyID, userID string, in dto.RegisterConsumptionRequest) (*dto.ConsumptionResponse, error) {
	if in.LotID == "" || in.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	detail, err := uc.consume.Execute(ctx, companyID, userID, in.LotID, dto.ConsumeMaterialsRequest{
		Lines: []dto.ConsumeLineRequest{{MaterialID: in.MaterialID, Quantity: in.Quantity}},
	})
	if err != nil {
		return nil, err
	}

	stock, err := uc.stockRepo.GetByRef(companyID, entity.StockRefMaterial, in.MaterialID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConsumptionResponse{LotID: in.LotID, Stock: costing.StockItemToResponse(stock)}
	for _, c := range detail.Consumptions {
		resp.TotalCost = resp.TotalCost.Add(c.TotalCost)
	}
	return resp, nil
}
