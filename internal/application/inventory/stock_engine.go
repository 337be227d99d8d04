package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// StockEngine aplica entradas y salidas de forma transaccional: bloqueo de fila
// (SELECT FOR UPDATE), actualización condicional de la cantidad y alta de la operación
// en la misma tx. Auditoría y feed de stock solo después del Commit.
type StockEngine struct {
	txRunner TxRunner
	audit    audit.Recorder
	notifier StockNotifier
	now      func() time.Time
}

// NewStockEngine construye el motor de stock.
func NewStockEngine(txRunner TxRunner, recorder audit.Recorder, notifier StockNotifier) *StockEngine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &StockEngine{
		txRunner: txRunner,
		audit:    recorder,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ApplyIncoming registra una entrada: quantity += q.
func (e *StockEngine) ApplyIncoming(
	ctx context.Context, actor entity.Actor,
	productID string, quantity int64, unitPrice decimal.Decimal, at time.Time,
) (*entity.Operation, error) {
	return e.apply(ctx, actor, entity.OperationIncoming, productID, quantity, unitPrice, at)
}

// ApplyOutgoing registra una salida: quantity -= q. ErrInsufficientStock si q > stock actual.
func (e *StockEngine) ApplyOutgoing(
	ctx context.Context, actor entity.Actor,
	productID string, quantity int64, unitPrice decimal.Decimal, at time.Time,
) (*entity.Operation, error) {
	return e.apply(ctx, actor, entity.OperationOutgoing, productID, quantity, unitPrice, at)
}

func (e *StockEngine) apply(
	ctx context.Context, actor entity.Actor, opType string,
	productID string, quantity int64, unitPrice decimal.Decimal, at time.Time,
) (*entity.Operation, error) {
	if productID == "" || quantity <= 0 || unitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidID(productID) {
		return nil, domain.ErrNotFound
	}
	if at.IsZero() {
		at = e.now()
	}
	delta := quantity
	if opType == entity.OperationOutgoing {
		delta = -quantity
	}

	var (
		op      *entity.Operation
		product *entity.Product
	)
	err := e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
	) error {
		// Bloquea la fila del producto hasta el Commit
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		// Salida mayor al stock: ErrInsufficientStock; entrada que desborda int64: ErrInvalidInput
		if _, err := domaininv.ApplyDelta(p.Quantity, delta); err != nil {
			return err
		}
		// Update condicional: la BD vuelve a verificar quantity + delta >= 0
		newQty, err := productRepo.AdjustQuantity(ctx, p.ID, delta)
		if err != nil {
			return err
		}
		p.Quantity = newQty

		o := &entity.Operation{
			ID:          uuid.New().String(),
			Date:        at,
			Type:        opType,
			ProductID:   p.ID,
			Quantity:    quantity,
			Price:       unitPrice,
			CreatedBy:   actor.UserID,
			ProductName: p.Name,
			ProductCode: p.Code,
		}
		if err := operationRepo.Create(ctx, o); err != nil {
			return err
		}
		op, product = o, p
		return nil
	})
	if err != nil {
		return nil, domain.Persistence(err)
	}

	action, eventAction, label := entity.ActionAddIncoming, EventIncoming, "Entrada registrada"
	if opType == entity.OperationOutgoing {
		action, eventAction, label = entity.ActionAddOutgoing, EventOutgoing, "Salida registrada"
	}
	e.audit.Record(ctx, actor, action, fmt.Sprintf("%s: %s, cantidad: %d, precio: %s",
		label, product.Name, quantity, unitPrice.String()))
	e.notifier.NotifyStock(ctx, StockEvent{
		Type:        "stock_update",
		Action:      eventAction,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductCode: product.Code,
		Quantity:    product.Quantity,
		Delta:       delta,
		LowStock:    product.IsLowStock(),
		UserID:      actor.UserID,
		At:          e.now(),
	})
	return op, nil
}
