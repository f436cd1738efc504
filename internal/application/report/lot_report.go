package report

import (
	"context"
	"fmt"

	"github.com/tu-usuario/manufactura-pro/internal/domain"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
	"github.com/tu-usuario/manufactura-pro/internal/domain/repository"
)

// MaterialLineForPDF una línea de consumo enriquecida con datos del material.
type MaterialLineForPDF struct {
	Consumption *entity.LotConsumption
	Material    *entity.Material
}

// LotPDFGenerator puerto para generar la hoja de costos del lote.
type LotPDFGenerator interface {
	GenerateLotPDF(ctx context.Context, lot *entity.ProductionLot, product *entity.Product, company *entity.Company, lines []MaterialLineForPDF) ([]byte, error)
}

// LotReportUseCase genera la hoja de costos (PDF) de un lote de producción.
// Solo tiene sentido con consumos registrados: un lote PLANNED se rechaza.
type LotReportUseCase struct {
	lotRepo         repository.ProductionLotRepository
	productRepo     repository.ProductRepository
	companyRepo     repository.CompanyRepository
	consumptionRepo repository.LotConsumptionRepository
	materialRepo    repository.MaterialRepository
	generator       LotPDFGenerator
}

// NewLotReportUseCase construye el caso de uso inyectando sus dependencias.
func NewLotReportUseCase(
	lotRepo repository.ProductionLotRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	consumptionRepo repository.LotConsumptionRepository,
	materialRepo repository.MaterialRepository,
	generator LotPDFGenerator,
) *LotReportUseCase {
	return &LotReportUseCase{
		lotRepo:         lotRepo,
		productRepo:     productRepo,
		companyRepo:     companyRepo,
		consumptionRepo: consumptionRepo,
		materialRepo:    materialRepo,
		generator:       generator,
	}
}

// DownloadLotPDF recupera lote, producto, empresa y consumos, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el lote no existe.
//   - domain.ErrForbidden        si el lote no pertenece a la empresa del token.
//   - domain.ErrLotState         si el lote está en PLANNED (sin consumos aún).
func (uc *LotReportUseCase) DownloadLotPDF(ctx context.Context, companyID, lotID string) (pdfBytes []byte, filename string, err error) {
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener lote: %w", err)
	}
	if lot == nil {
		return nil, "", domain.ErrNotFound
	}
	if lot.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if lot.Status == entity.LotStatusPlanned {
		return nil, "", domain.ErrLotState
	}

	product, err := uc.productRepo.GetByID(lot.ProductID)
	if err != nil || product == nil {
		return nil, "", fmt.Errorf("reporte: obtener producto: %w", err)
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("reporte: obtener empresa: %w", err)
	}

	consumptions, err := uc.consumptionRepo.ListByLot(lotID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: obtener consumos: %w", err)
	}
	lines := make([]MaterialLineForPDF, 0, len(consumptions))
	for _, c := range consumptions {
		material, err := uc.materialRepo.GetByID(c.MaterialID)
		if err != nil {
			return nil, "", fmt.Errorf("reporte: obtener material: %w", err)
		}
		lines = append(lines, MaterialLineForPDF{Consumption: c, Material: material})
	}

	pdfBytes, err = uc.generator.GenerateLotPDF(ctx, lot, product, company, lines)
	if err != nil {
		return nil, "", err
	}
	filename = fmt.Sprintf("lote-%s.pdf", lot.LotCode)
	return pdfBytes, filename, nil
}
