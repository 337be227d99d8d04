package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s  *Store
	tx *dataset
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.write(r.tx, func(d *dataset) error {
		if _, ok := d.products[p.ID]; ok {
			return fmt.Errorf("insert product: id %s repetido", p.ID)
		}
		for _, other := range d.products {
			if other.Code == p.Code {
				return domain.ErrDuplicateCode
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(r.tx, func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(r.tx, func(d *dataset) error {
		for _, p := range d.products {
			if p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el mutex del store ya serializa el acceso.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.write(r.tx, func(d *dataset) error {
		if _, ok := d.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range d.products {
			if other.Code == p.Code && other.ID != p.ID {
				return domain.ErrDuplicateCode
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) AdjustQuantity(_ context.Context, id string, delta int64) (int64, error) {
	var qty int64
	err := r.s.write(r.tx, func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		next, err := domaininv.ApplyDelta(p.Quantity, delta)
		if err != nil {
			return err
		}
		p.Quantity = next
		d.products[id] = p
		qty = p.Quantity
		return nil
	})
	return qty, err
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true })
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return r.filter((*entity.Product).IsLowStock)
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.s.read(r.tx, func(d *dataset) error {
		for _, p := range d.products {
			p := p
			if keep(&p) {
				list = append(list, &p)
			}
		}
		return nil
	})
	sortProducts(list)
	return list, err
}

// Delete falla si quedan operaciones del producto, igual que la FK RESTRICT de PostgreSQL.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.write(r.tx, func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, op := range d.operations {
			if op.ProductID == id {
				return fmt.Errorf("delete product: operaciones referencian a %s", id)
			}
		}
		delete(d.products, id)
		return nil
	})
}
