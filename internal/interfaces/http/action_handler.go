package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/pkg/validator"
)

// ActionHandler historial de acciones de usuario (solo lectura).
type ActionHandler struct {
	audit *audit.Logger
	log   zerolog.Logger
}

// NewActionHandler construye el handler del historial.
func NewActionHandler(a *audit.Logger, log zerolog.Logger) *ActionHandler {
	return &ActionHandler{audit: a, log: log}
}

// List godoc
// @Summary      Historial de acciones
// @Tags         actions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ActionLogListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/actions [get]
func (h *ActionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if errs := validator.ValidateStruct(page); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Message(errs)})
	}
	page.DefaultPage()
	out, err := h.audit.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
