package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo operaciones en memoria.
type OperationRepo struct {
	s  *Store
	tx *dataset
}

func (r *OperationRepo) Create(_ context.Context, op *entity.Operation) error {
	return r.s.write(r.tx, func(d *dataset) error {
		if _, ok := d.products[op.ProductID]; !ok {
			return fmt.Errorf("insert operation: producto %s inexistente", op.ProductID)
		}
		if op.Quantity <= 0 {
			return fmt.Errorf("insert operation: cantidad %d", op.Quantity)
		}
		stored := *op
		stored.ProductName, stored.ProductCode = "", ""
		d.operations = append(d.operations, stored)
		return nil
	})
}

func (r *OperationRepo) ListRecent(_ context.Context, limit int) ([]*entity.Operation, error) {
	list, err := r.collect(func(*entity.Operation) bool { return true }, true)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *OperationRepo) ListBetween(_ context.Context, from time.Time, to *time.Time) ([]*entity.Operation, error) {
	return r.collect(func(op *entity.Operation) bool {
		return !op.Date.Before(from) && (to == nil || op.Date.Before(*to))
	}, true)
}

func (r *OperationRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Operation, error) {
	return r.collect(func(op *entity.Operation) bool { return op.ProductID == productID }, false)
}

func (r *OperationRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	err := r.s.write(r.tx, func(d *dataset) error {
		kept := d.operations[:0:0]
		for _, op := range d.operations {
			if op.ProductID == productID {
				n++
				continue
			}
			kept = append(kept, op)
		}
		d.operations = kept
		return nil
	})
	return n, err
}

// collect filtra y completa nombre/código del producto. desc: más recientes primero.
func (r *OperationRepo) collect(keep func(*entity.Operation) bool, desc bool) ([]*entity.Operation, error) {
	var list []*entity.Operation
	err := r.s.read(r.tx, func(d *dataset) error {
		for i := range d.operations {
			op := d.operations[i]
			if !keep(&op) {
				continue
			}
			if p, ok := d.products[op.ProductID]; ok {
				op.ProductName, op.ProductCode = p.Name, p.Code
			}
			list = append(list, &op)
		}
		return nil
	})
	if desc {
		// a igual fecha, la última insertada primero
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	} else {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	return list, err
}
