package inventory

import (
	"math"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ApplyDelta devuelve la nueva cantidad tras aplicar delta (servicio de dominio).
// Nunca deja el stock en negativo: si current + delta < 0 devuelve ErrInsufficientStock.
// Una entrada que desborda int64 es ErrInvalidInput.
func ApplyDelta(current, delta int64) (int64, error) {
	if delta > 0 && current > math.MaxInt64-delta {
		return current, domain.ErrInvalidInput
	}
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// Replay recalcula la cantidad de un producto a partir de la inicial y sus operaciones:
// initial + Σentradas − Σsalidas. Lo usa el historial del producto para la cantidad de apertura.
func Replay(initial int64, ops []*entity.Operation) int64 {
	q := initial
	for _, op := range ops {
		q += op.Delta()
	}
	return q
}
