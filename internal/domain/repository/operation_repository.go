package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// OperationRepository define el puerto de persistencia para operaciones de stock.
// No existe actualización: las operaciones son inmutables.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Operation, error)
	// ListBetween lista operaciones con from <= date < to (to nil = sin límite), fecha desc.
	ListBetween(ctx context.Context, from time.Time, to *time.Time) ([]*entity.Operation, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Operation, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}
