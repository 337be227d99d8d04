package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las implementaciones aceptan pool o transacción; GetForUpdate solo bloquea dentro de una tx.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustQuantity suma delta a quantity de forma condicional: nunca deja stock negativo.
	// Devuelve la nueva cantidad, ErrInsufficientStock o ErrNotFound.
	AdjustQuantity(ctx context.Context, id string, delta int64) (int64, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
