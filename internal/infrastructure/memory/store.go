// Package memory implementa los puertos de persistencia en memoria (tests y desarrollo).
// Las transacciones toman el mutex del store durante todo el callback, trabajan sobre una
// copia de los datos y la publican solo si el callback termina sin error.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var (
	_ inventory.TxRunner          = (*Store)(nil)
	_ repository.ReportRepository = (*Store)(nil)
)

type dataset struct {
	products   map[string]entity.Product
	operations []entity.Operation // orden de inserción
	users      map[string]entity.User
	actions    []entity.ActionLog
}

func newDataset() *dataset {
	return &dataset{
		products: make(map[string]entity.Product),
		users:    make(map[string]entity.User),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		products:   make(map[string]entity.Product, len(d.products)),
		operations: append([]entity.Operation(nil), d.operations...),
		users:      make(map[string]entity.User, len(d.users)),
		actions:    append([]entity.ActionLog(nil), d.actions...),
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// Store almacenamiento en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newDataset()}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Operations repositorio de operaciones fuera de transacción.
func (s *Store) Operations() *OperationRepo { return &OperationRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// ActionLogs repositorio del historial.
func (s *Store) ActionLogs() *ActionLogRepo { return &ActionLogRepo{s: s} }

// Run ejecuta fn con repositorios atados a una copia de los datos; la copia reemplaza al
// estado actual solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(&ProductRepo{s: s, tx: tx}, &OperationRepo{s: s, tx: tx}); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// Totals valor total y unidades del inventario.
func (s *Store) Totals(_ context.Context) (repository.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := repository.Totals{TotalValue: decimal.Zero}
	for _, p := range s.data.products {
		t.TotalValue = t.TotalValue.Add(p.Value())
		t.TotalItems += p.Quantity
	}
	return t, nil
}

// read ejecuta fn sobre los datos de la tx o, fuera de ella, bajo RLock.
func (s *Store) read(tx *dataset, fn func(d *dataset) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write ejecuta fn sobre los datos de la tx o, fuera de ella, bajo Lock.
func (s *Store) write(tx *dataset, fn func(d *dataset) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Code < list[j].Code
	})
}
