package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

const defaultRecentOperations = 20

// InventoryHandler entradas, salidas e historial reciente de operaciones.
type InventoryHandler struct {
	engine  *inventory.StockEngine
	reports *analytics.ReportUseCase
	log     zerolog.Logger
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(engine *inventory.StockEngine, reports *analytics.ReportUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{engine: engine, reports: reports, log: log}
}

// Incoming godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterOperationRequest  true  "product_id, quantity, price, date opcional"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/incoming [post]
func (h *InventoryHandler) Incoming(c *fiber.Ctx) error {
	return h.register(c, entity.OperationIncoming)
}

// Outgoing godoc
// @Summary      Registrar salida de stock
// @Description  Falla con INSUFFICIENT_STOCK si la cantidad supera el stock actual.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterOperationRequest  true  "product_id, quantity, price, date opcional"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/outgoing [post]
func (h *InventoryHandler) Outgoing(c *fiber.Ctx) error {
	return h.register(c, entity.OperationOutgoing)
}

func (h *InventoryHandler) register(c *fiber.Ctx, opType string) error {
	var in dto.RegisterOperationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.engine.RegisterFromRequest(c.UserContext(), ActorFrom(c), opType, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Últimas operaciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad"  default(20)
// @Success      200    {array}   dto.OperationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/inventory/operations [get]
func (h *InventoryHandler) Recent(c *fiber.Ctx) error {
	out, err := h.reports.RecentOperations(c.UserContext(), c.QueryInt("limit", defaultRecentOperations))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
