package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterOperationRequest entrada HTTP para registrar una entrada o salida de stock.
// Date es opcional (RFC3339 o "2006-01-02T15:04"); vacío = momento del envío.
type RegisterOperationRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0,max=1000000000000"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Date      string          `json:"date"`
}

// OperationResponse salida de una operación de stock.
type OperationResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	ProductCode string          `json:"product_code,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// HistoryEntry operación con el saldo del producto justo después de aplicarla.
type HistoryEntry struct {
	OperationResponse
	Balance int64 `json:"balance"`
}

// ProductHistoryResponse kardex de un producto: cantidad de apertura (la que no explican
// las operaciones registradas) y las operaciones en orden cronológico con su saldo.
type ProductHistoryResponse struct {
	Product         ProductResponse `json:"product"`
	OpeningQuantity int64           `json:"opening_quantity"`
	Operations      []HistoryEntry  `json:"operations"`
}
