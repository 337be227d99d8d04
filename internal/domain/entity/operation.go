package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de stock.
const (
	OperationIncoming = "incoming" // entrada de mercancía
	OperationOutgoing = "outgoing" // salida de mercancía
)

// Operation es un movimiento de stock inmutable.
type Operation struct {
	ID        string
	Date      time.Time
	Type      string
	ProductID string
	Quantity  int64           // siempre positiva; el signo lo da Type
	Price     decimal.Decimal // precio unitario en el momento de la operación
	CreatedBy string

	// Solo lectura: se completan en los listados (join con products).
	ProductName string
	ProductCode string
}

// ValidOperationType indica si t es un tipo de operación conocido.
func ValidOperationType(t string) bool {
	return t == OperationIncoming || t == OperationOutgoing
}

// Delta devuelve el efecto de la operación sobre la cantidad del producto.
func (o *Operation) Delta() int64 {
	if o.Type == OperationOutgoing {
		return -o.Quantity
	}
	return o.Quantity
}
