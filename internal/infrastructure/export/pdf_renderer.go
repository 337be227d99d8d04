// Package export renderiza el reporte de inventario por período en PDF y XML.
//
// Layout del PDF (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período       │  fecha de generación       │
//	│  TOTALES: valor del inventario / unidades                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: Código | Producto | Cant. | Mínimo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OPERACIONES: Fecha | Tipo | Producto | Cant. | P.Unit | Tot │
//	└─────────────────────────────────────────────────────────────┘
package export

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

var _ analytics.ReportRenderer = (*PDFRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// PDFRenderer implementa analytics.ReportRenderer usando Maroto v2.
type PDFRenderer struct {
	author  string
	printer *message.Printer
}

// NewPDFRenderer construye el renderer; author va en los metadatos del documento.
func NewPDFRenderer(author string) *PDFRenderer {
	return &PDFRenderer{author: author, printer: message.NewPrinter(language.Spanish)}
}

// ContentType del documento generado.
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *PDFRenderer) Render(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(r.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(report))
	m.AddRows(r.totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(fmt.Sprintf("PRODUCTOS CON STOCK BAJO (%d)", len(report.LowStock))))
	m.AddRows(lowStockHeaderRow())
	m.AddRows(r.lowStockRows(report.LowStock)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow(fmt.Sprintf("OPERACIONES DEL PERÍODO (%d)", len(report.Operations))))
	m.AddRows(operationsHeaderRow())
	m.AddRows(r.operationRows(report.Operations)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (r *PDFRenderer) headerRow(report *dto.ReportResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodLabel(report), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.Generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (r *PDFRenderer) totalsRow(report *dto.ReportResponse) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("Valor total del inventario: $"+r.money(report.TotalValue), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 2,
		})),
		col.New(6).Add(text.New("Unidades en stock: "+r.printer.Sprintf("%d", report.TotalItems), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func lowStockHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Código", 3, align.Left),
		headerCol("Producto", 5, align.Left),
		headerCol("Cantidad", 2, align.Right),
		headerCol("Mínimo", 2, align.Right),
	)
}

func (r *PDFRenderer) lowStockRows(list []dto.ProductResponse) []core.Row {
	if len(list) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(list))
	for _, p := range list {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.printer.Sprintf("%d", p.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert,
			})),
			col.New(2).Add(text.New(r.printer.Sprintf("%d", p.MinQuantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func operationsHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Fecha", 2, align.Left),
		headerCol("Tipo", 2, align.Left),
		headerCol("Producto", 3, align.Left),
		headerCol("Cant.", 1, align.Right),
		headerCol("P. Unit.", 2, align.Right),
		headerCol("Total", 2, align.Right),
	)
}

func (r *PDFRenderer) operationRows(list []dto.OperationResponse) []core.Row {
	if len(list) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, len(list))
	for _, o := range list {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(o.Date.Format("02/01/2006 15:04"), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(typeLabel(o.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(o.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.printer.Sprintf("%d", o.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+r.money(o.Price), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+r.money(o.Total), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New("Sin registros", props.Text{
		Size: 8, Top: 1, Left: 1, Color: colorGray,
	})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles y dos decimales (es: 1.234.567,50).
func (r *PDFRenderer) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return r.printer.Sprintf("%.2f", f)
}

func periodLabel(report *dto.ReportResponse) string {
	from := report.From.Format("02/01/2006")
	if report.To == nil {
		return "desde " + from
	}
	// To es exclusivo: el último día incluido es el anterior
	return from + " - " + report.To.AddDate(0, 0, -1).Format("02/01/2006")
}

func typeLabel(t string) string {
	switch t {
	case entity.OperationIncoming:
		return "Entrada"
	case entity.OperationOutgoing:
		return "Salida"
	default:
		return t
	}
}
