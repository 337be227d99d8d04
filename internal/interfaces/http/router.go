package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/auth"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	StockEngine   *inventory.StockEngine
	Reports       *analytics.ReportUseCase
	Exports       *analytics.ExportUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Audit         *audit.Logger
	Hub           *ws.Hub // nil = sin feed websocket
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: registro con sesión opcional (se atribuye al usuario que registra, si lo hay)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", OptionalAuth(deps.AuthUC), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.AuthUC), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token o cookie)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/operations", productHandler.History)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockEngine, deps.Reports, deps.Log)
	invGroup.Post("/incoming", inventoryHandler.Incoming)
	invGroup.Post("/outgoing", inventoryHandler.Outgoing)
	invGroup.Get("/operations", inventoryHandler.Recent)

	reportHandler := NewReportHandler(deps.Reports, deps.Exports, deps.Replenishment, deps.Log)
	protected.Get("/dashboard", reportHandler.Dashboard)
	reports := protected.Group("/reports")
	reports.Get("/", reportHandler.Report)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/totals", reportHandler.Totals)
	reports.Get("/replenishment", reportHandler.Replenishment)
	reports.Get("/export.pdf", reportHandler.ExportPDF)
	reports.Get("/export.xml", reportHandler.ExportXML)

	actionHandler := NewActionHandler(deps.Audit, deps.Log)
	protected.Get("/actions", actionHandler.List)

	if deps.Hub != nil {
		// Feed de stock: mismo token que la API; los navegadores lo envían como cookie
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws/stock", AuthMiddleware(deps.AuthUC), websocket.New(deps.Hub.Serve))
	}
}
