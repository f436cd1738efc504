package production

import (
	"context"

	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// LotQueryUseCase consultas de solo lectura sobre lotes.
type LotQueryUseCase struct {
	lotRepo         repository.ProductionLotRepository
	consumptionRepo repository.LotConsumptionRepository
}

// NewLotQueryUseCase construye el caso de uso.
func NewLotQueryUseCase(lotRepo repository.ProductionLotRepository, consumptionRepo repository.LotConsumptionRepository) *LotQueryUseCase {
	return &LotQueryUseCase{lotRepo: lotRepo, consumptionRepo: consumptionRepo}
}

// GetByID devuelve el lote con sus consumos.
func (uc *LotQueryUseCase) GetByID(ctx context.Context, companyID, lotID string) (*dto.LotDetailResponse, error) {
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if lot.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	consumptions, err := uc.consumptionRepo.ListByLot(lotID)
	if err != nil {
		return nil, err
	}
	return &dto.LotDetailResponse{
		Lot:          LotToResponse(lot),
		Consumptions: ConsumptionsToResponse(consumptions),
	}, nil
}

// ListByCompany lista lotes de la empresa, con filtro opcional por estado.
func (uc *LotQueryUseCase) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]dto.LotResponse, error) {
	lots, err := uc.lotRepo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, LotToResponse(l))
	}
	return out, nil
}
