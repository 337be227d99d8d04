package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
)

const reportDateLayout = "2006-01-02"

// ReportHandler tablero, reportes por período, exportaciones y reposición.
type ReportHandler struct {
	reports       *analytics.ReportUseCase
	exports       *analytics.ExportUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           zerolog.Logger
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(
	reports *analytics.ReportUseCase,
	exports *analytics.ExportUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log zerolog.Logger,
) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, replenishment: replenishment, log: log}
}

// Dashboard godoc
// @Summary      Tablero: productos, stock bajo, últimas operaciones y valor total
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.reports.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte por período
// @Description  Con ambas fechas incluye el día final completo; sin ellas, los últimos 30 días.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	start, end, ok := parseReportDates(c)
	if !ok {
		return invalidDate(c)
	}
	out, err := h.reports.Report(c.UserContext(), ActorFrom(c), start, end)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Totals godoc
// @Summary      Valor total y unidades del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalsResponse
// @Router       /api/reports/totals [get]
func (h *ReportHandler) Totals(c *fiber.Ctx) error {
	out, err := h.reports.Totals(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Reporte por período en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, "pdf")
}

// ExportXML godoc
// @Summary      Reporte por período en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200
// @Router       /api/reports/export.xml [get]
func (h *ReportHandler) ExportXML(c *fiber.Ctx) error {
	return h.export(c, "xml")
}

func (h *ReportHandler) export(c *fiber.Ctx, format string) error {
	start, end, ok := parseReportDates(c)
	if !ok {
		return invalidDate(c)
	}
	doc, contentType, supported, err := h.exports.Export(c.UserContext(), ActorFrom(c), format, start, end)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !supported {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: "formato no disponible"})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.`+format+`"`)
	return c.Send(doc)
}

// parseReportDates lee start_date y end_date (YYYY-MM-DD). Ausentes = nil.
func parseReportDates(c *fiber.Ctx) (start, end *time.Time, ok bool) {
	parse := func(key string) (*time.Time, bool) {
		v := c.Query(key)
		if v == "" {
			return nil, true
		}
		t, err := time.Parse(reportDateLayout, v)
		if err != nil {
			return nil, false
		}
		return &t, true
	}
	if start, ok = parse("start_date"); !ok {
		return nil, nil, false
	}
	if end, ok = parse("end_date"); !ok {
		return nil, nil, false
	}
	return start, end, true
}

func invalidDate(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "formato de fecha: YYYY-MM-DD"})
}
