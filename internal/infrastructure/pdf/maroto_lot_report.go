// Package pdf implementa la generación de la hoja de costos de un lote
// de producción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Código de lote + Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: SKU + nombre │ Cant. planificada / producida     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Cant | C.Unit (WAC) | Costo total        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Costo materiales / Costo total / Costo unitario   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appreport "github.com/tu-usuario/manufactura-pro/internal/application/report"
	"github.com/tu-usuario/manufactura-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLotReportGenerator implementa report.LotPDFGenerator usando Maroto v2.
type MarotoLotReportGenerator struct{}

// NewMarotoLotReportGenerator construye el generador.
func NewMarotoLotReportGenerator() *MarotoLotReportGenerator { return &MarotoLotReportGenerator{} }

// GenerateLotPDF genera la hoja de costos del lote y devuelve sus bytes.
func (g *MarotoLotReportGenerator) GenerateLotPDF(
	_ context.Context,
	lot *entity.ProductionLot,
	product *entity.Product,
	company *entity.Company,
	lines []appreport.MaterialLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Costos de Lote", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(lot, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(lot, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de consumos
	m.AddRows(tableHeaderRow())
	for _, r := range tableConsumptionRows(lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lot, lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(lot))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + NIT (izq) y código de lote + estado (der).
func headerRow(lot *entity.ProductionLot, company *entity.Company) core.Row {
	fecha := lot.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS DE LOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(lot.LotCode, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Creado: %s", lot.Status, fecha), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// productRow: producto fabricado y cantidades del lote.
func productRow(lot *entity.ProductionLot, product *entity.Product) core.Row {
	produced := "—"
	if lot.Status == entity.LotStatusCompleted {
		produced = lot.ProducedQuantity.StringFixed(2)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("[%s] %s", product.SKU, product.Name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cant. planificada: %s %s   |   Cant. producida: %s",
				lot.PlannedQuantity.StringFixed(2),
				product.UnitMeasure,
				produced,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de consumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("C. Unit. (prom.)", 2, align.Right),
		h("Costo total", 3, align.Right),
	)
}

// tableConsumptionRows: una fila por consumo del lote.
func tableConsumptionRows(lines []appreport.MaterialLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.Consumption.MaterialID
		if l.Material != nil {
			name = fmt.Sprintf("[%s] %s", l.Material.Code, l.Material.Name)
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.Consumption.Quantity.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Consumption.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Consumption.TotalCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. Para un lote aún
// en proceso el costo total y unitario del lote todavía no existen.
func totalsRow(lot *entity.ProductionLot, lines []appreport.MaterialLineForPDF) core.Row {
	materials := decimal.Zero
	for _, l := range lines {
		materials = materials.Add(l.Consumption.TotalCost)
	}
	total, unit := "—", "—"
	if lot.TotalCost != nil {
		total = "$" + lot.TotalCost.StringFixed(2)
	}
	if lot.UnitCost != nil {
		unit = "$" + lot.UnitCost.StringFixed(2)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3), // espacio izquierdo
		col.New(4).Add(
			label("Costo materiales:"),
			label("Costo total del lote:"),
			grandLabel("COSTO UNITARIO:"),
		),
		col.New(3).Add(
			value("$"+materials.StringFixed(2)),
			value(total),
			grandValue(unit),
		),
		col.New(2), // espacio derecho
	)
}

// footerRow: leyenda de cierre con las fechas del lote.
func footerRow(lot *entity.ProductionLot) core.Row {
	periodo := "Lote sin iniciar"
	if lot.StartDate != nil {
		periodo = "Inicio: " + lot.StartDate.Format("02/01/2006")
		if lot.EndDate != nil {
			periodo += "   |   Cierre: " + lot.EndDate.Format("02/01/2006")
		}
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(periodo, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New(
			"Los costos unitarios de materiales corresponden al costo promedio ponderado "+
				"vigente al momento de cada consumo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 6},
		),
	))
}
