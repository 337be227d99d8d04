package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

var _ analytics.ReportRenderer = (*XMLRenderer)(nil)

// XMLRenderer serializa el reporte como documento XML.
type XMLRenderer struct {
	indent int
}

// NewXMLRenderer construye el renderer con sangría de 2 espacios.
func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{indent: 2} }

// ContentType del documento generado.
func (r *XMLRenderer) ContentType() string { return "application/xml" }

// Render genera <InventoryReport> con totales, stock bajo y operaciones.
func (r *XMLRenderer) Render(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("InventoryReport")
	root.CreateAttr("generatedAt", report.Generated.Format(time.RFC3339))

	period := root.CreateElement("Period")
	period.CreateAttr("from", report.From.Format(time.RFC3339))
	if report.To != nil {
		period.CreateAttr("to", report.To.Format(time.RFC3339))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("TotalValue").SetText(report.TotalValue.StringFixed(2))
	totals.CreateElement("TotalItems").SetText(strconv.FormatInt(report.TotalItems, 10))

	low := root.CreateElement("LowStock")
	low.CreateAttr("count", strconv.Itoa(len(report.LowStock)))
	for _, p := range report.LowStock {
		el := low.CreateElement("Product")
		el.CreateAttr("id", p.ID)
		el.CreateAttr("code", p.Code)
		el.CreateElement("Name").SetText(p.Name)
		el.CreateElement("Quantity").SetText(strconv.FormatInt(p.Quantity, 10))
		el.CreateElement("MinQuantity").SetText(strconv.FormatInt(p.MinQuantity, 10))
		el.CreateElement("Price").SetText(p.Price.StringFixed(2))
	}

	ops := root.CreateElement("Operations")
	ops.CreateAttr("count", strconv.Itoa(len(report.Operations)))
	for _, o := range report.Operations {
		el := ops.CreateElement("Operation")
		el.CreateAttr("id", o.ID)
		el.CreateAttr("type", o.Type)
		el.CreateElement("Date").SetText(o.Date.Format(time.RFC3339))
		prod := el.CreateElement("Product")
		prod.CreateAttr("id", o.ProductID)
		prod.CreateAttr("code", o.ProductCode)
		prod.SetText(o.ProductName)
		el.CreateElement("Quantity").SetText(strconv.FormatInt(o.Quantity, 10))
		el.CreateElement("UnitPrice").SetText(o.Price.StringFixed(2))
		el.CreateElement("Total").SetText(o.Total.StringFixed(2))
		if o.CreatedBy != "" {
			el.CreateElement("CreatedBy").SetText(o.CreatedBy)
		}
	}

	doc.Indent(r.indent)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar reporte: %w", err)
	}
	return out, nil
}
