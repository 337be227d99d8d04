package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationSelect = `
	SELECT o.id, o.date, o.type, o.product_id, o.quantity, o.price,
	       COALESCE(o.created_by::text, ''), p.name, p.code
	FROM operations o
	JOIN products p ON p.id = o.product_id`

// OperationRepo historial de operaciones sobre PostgreSQL. Solo inserción, lectura y borrado en cascada.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

// Create inserta una operación. created_by vacío se guarda como NULL.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	query := `
		INSERT INTO operations (id, date, type, product_id, quantity, price, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)`
	_, err := r.q.Exec(ctx, query, op.ID, op.Date, op.Type, op.ProductID, op.Quantity, op.Price, op.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// ListRecent últimas limit operaciones por fecha descendente.
func (r *OperationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Operation, error) {
	return r.list(ctx, operationSelect+` ORDER BY o.date DESC, o.id LIMIT $1`, limit)
}

// ListBetween operaciones con from <= date < to; to nil = sin límite superior.
func (r *OperationRepo) ListBetween(ctx context.Context, from time.Time, to *time.Time) ([]*entity.Operation, error) {
	if to == nil {
		return r.list(ctx, operationSelect+` WHERE o.date >= $1 ORDER BY o.date DESC, o.id`, from)
	}
	return r.list(ctx, operationSelect+` WHERE o.date >= $1 AND o.date < $2 ORDER BY o.date DESC, o.id`, from, *to)
}

// ListByProduct operaciones de un producto en orden cronológico.
func (r *OperationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Operation, error) {
	return r.list(ctx, operationSelect+` WHERE o.product_id = $1 ORDER BY o.date, o.id`, productID)
}

// DeleteByProduct borra todas las operaciones de un producto y devuelve cuántas eran.
func (r *OperationRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM operations WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete operations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OperationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Operation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
	}
	return list, rows.Err()
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var op entity.Operation
	if err := row.Scan(
		&op.ID, &op.Date, &op.Type, &op.ProductID, &op.Quantity, &op.Price,
		&op.CreatedBy, &op.ProductName, &op.ProductCode,
	); err != nil {
		return nil, err
	}
	return &op, nil
}
