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
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// UpsertBOMUseCase reemplaza la lista de materiales completa de un producto
// en una transacción. Los lotes ya creados no se recalculan: la BOM se
// resuelve al momento de consumir.
type UpsertBOMUseCase struct {
	txRunner    costing.TxRunner
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// NewUpsertBOMUseCase construye el caso de uso.
func NewUpsertBOMUseCase(txRunner costing.TxRunner, productRepo repository.ProductRepository, bomRepo repository.BOMRepository) *UpsertBOMUseCase {
	return &UpsertBOMUseCase{txRunner: txRunner, productRepo: productRepo, bomRepo: bomRepo}
}

// Execute valida las líneas (cantidades positivas, sin materiales repetidos)
// y reemplaza el conjunto.
func (uc *UpsertBOMUseCase) Execute(ctx context.Context, companyID, productID string, in dto.UpsertBOMRequest) (*dto.BOMResponse, error) {
	if productID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	seen := make(map[string]bool, len(in.Lines))
	lines := make([]*entity.BOMLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.QuantityPerUnit.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[l.MaterialID] {
			return nil, domain.ErrInvalidInput
		}
		seen[l.MaterialID] = true
		lines = append(lines, &entity.BOMLine{
			ID:              uuid.New().String(),
			ProductID:       productID,
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
			UnitMeasure:     l.UnitMeasure,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	err = uc.txRunner.Run(ctx, func(repos costing.TxRepos) error {
		return repos.BOM.Replace(productID, lines)
	})
	if err != nil {
		return nil, err
	}

	return &dto.BOMResponse{ProductID: productID, Lines: in.Lines}, nil
}

// GetBOM devuelve la BOM del producto; si quantity > 0 incluye además los
// requerimientos resueltos para esa cantidad.
func (uc *UpsertBOMUseCase) GetBOM(ctx context.Context, companyID, productID string, quantity decimal.Decimal) (*dto.BOMResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	lines, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.BOMResponse{ProductID: productID, Lines: make([]dto.BOMLineRequest, 0, len(lines))}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.BOMLineRequest{
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
			UnitMeasure:     l.UnitMeasure,
		})
	}
	if quantity.GreaterThan(decimal.Zero) {
		resp.Requirements = RequirementsToResponse(ResolveRequirements(lines, quantity))
	}
	return resp, nil
}
