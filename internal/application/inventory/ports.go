package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso: garantiza atomicidad del libro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
	) error) error
}

// Acciones publicadas en el feed de stock.
const (
	EventIncoming       = "incoming"
	EventOutgoing       = "outgoing"
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

// StockEvent cambio de stock ya confirmado.
type StockEvent struct {
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductCode string    `json:"product_code"`
	Quantity    int64     `json:"quantity"`
	Delta       int64     `json:"delta"`
	LowStock    bool      `json:"low_stock"`
	UserID      string    `json:"user_id,omitempty"`
	At          time.Time `json:"at"`
}

// StockNotifier publica eventos de stock (best-effort, nunca bloquea ni falla al llamador).
type StockNotifier interface {
	NotifyStock(ctx context.Context, event StockEvent)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

// NotifyStock no hace nada.
func (NopNotifier) NotifyStock(context.Context, StockEvent) {}
