package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/manufactura-pro/internal/application/dto"
	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// CreateLotUseCase crea un lote de producción en estado PLANNED y devuelve
// los requerimientos de materiales resueltos desde la BOM como vista previa.
type CreateLotUseCase struct {
	lotRepo     repository.ProductionLotRepository
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// NewCreateLotUseCase construye el caso de uso.
func NewCreateLotUseCase(lotRepo repository.ProductionLotRepository, productRepo repository.ProductRepository, bomRepo repository.BOMRepository) *CreateLotUseCase {
	return &CreateLotUseCase{lotRepo: lotRepo, productRepo: productRepo, bomRepo: bomRepo}
}

// Execute valida, verifica unicidad del código de lote por empresa+producto
// y persiste el lote.
func (uc *CreateLotUseCase) Execute(ctx context.Context, companyID string, in dto.CreateLotRequest) (*dto.CreateLotResponse, error) {
	if in.ProductID == "" || in.LotCode == "" || !in.PlannedQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.lotRepo.GetByCode(companyID, in.ProductID, in.LotCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	lot := &entity.ProductionLot{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		ProductID:        in.ProductID,
		LotCode:          in.LotCode,
		PlannedQuantity:  in.PlannedQuantity,
		ProducedQuantity: decimal.Zero,
		Status:           entity.LotStatusPlanned,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.lotRepo.Create(lot); err != nil {
		return nil, err
	}

	lines, err := uc.bomRepo.ListByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	reqs := ResolveRequirements(lines, in.PlannedQuantity)

	return &dto.CreateLotResponse{
		Lot:          LotToResponse(lot),
		Requirements: RequirementsToResponse(reqs),
	}, nil
}

// LotToResponse convierte la entidad al DTO de respuesta.
func LotToResponse(l *entity.ProductionLot) dto.LotResponse {
	return dto.LotResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		LotCode:          l.LotCode,
		PlannedQuantity:  l.PlannedQuantity,
		ProducedQuantity: l.ProducedQuantity,
		Status:           l.Status,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		UnitCost:         l.UnitCost,
		TotalCost:        l.TotalCost,
	}
}

// RequirementsToResponse convierte los requerimientos al DTO de respuesta.
func RequirementsToResponse(reqs []Requirement) []dto.RequirementResponse {
	out := make([]dto.RequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.RequirementResponse{
			MaterialID:  r.MaterialID,
			Quantity:    r.Quantity,
			UnitMeasure: r.UnitMeasure,
		})
	}
	return out
}
