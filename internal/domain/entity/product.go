package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario.
// Quantity solo la modifica el motor de stock (o una edición directa del producto).
type Product struct {
	ID          string
	Name        string
	Code        string // código único global
	Quantity    int64
	Price       decimal.Decimal
	MinQuantity int64 // umbral de stock bajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si la cantidad cayó al mínimo configurado o por debajo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}

// Value devuelve quantity × price.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

// ValidID indica si id tiene formato de identificador (uuid). Un id mal formado no existe.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
