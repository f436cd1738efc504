package costing

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

// RegisterPurchaseUseCase registra una compra de materia prima: persiste la
// compra, aplica la entrada al stock y recalcula el WAC, todo en una
// transacción. El asiento del libro queda enlazado a la compra.
type RegisterPurchaseUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	wac          *WACService
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository, wac *WACService) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{txRunner: txRunner, materialRepo: materialRepo, wac: wac}
}

// Execute valida y aplica la compra. Una compra siempre es legal sobre un
// material existente: no exige stock previo ni inicialización.
func (uc *RegisterPurchaseUseCase) Execute(ctx context.Context, companyID, userID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.MaterialID == "" || !in.Quantity.GreaterThan(decimal.Zero) || !in.UnitPrice.GreaterThan(decimal.Zero) {
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

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		MaterialID: in.MaterialID,
		Supplier:   in.Supplier,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		TotalPrice: in.Quantity.Mul(in.UnitPrice),
		Date:       date,
		CreatedAt:  now,
		CreatedBy:  userID,
	}

	var stock *entity.StockItem
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Purchases.Create(purchase); err != nil {
			return err
		}
		stock, _, err = uc.wac.ApplyEntry(repos, EntryInput{
			CompanyID:  companyID,
			RefType:    entity.StockRefMaterial,
			RefID:      in.MaterialID,
			Kind:       entity.LedgerKindPurchase,
			Quantity:   in.Quantity,
			UnitCost:   in.UnitPrice,
			PurchaseID: purchase.ID,
			Date:       date,
			CreatedBy:  userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.PurchaseResponse{
		PurchaseID: purchase.ID,
		TotalPrice: purchase.TotalPrice,
		Stock:      StockItemToResponse(stock),
	}, nil
}
