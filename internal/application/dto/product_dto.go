package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Code        string          `json:"code" validate:"required,min=1,max=50"`
	Quantity    int64           `json:"quantity" validate:"min=0,max=1000000000000"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	MinQuantity int64           `json:"min_quantity" validate:"min=0,max=1000000000000"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Code        *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,min=0,max=1000000000000"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	MinQuantity *int64           `json:"min_quantity" validate:"omitempty,min=0,max=1000000000000"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	MinQuantity int64           `json:"min_quantity"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse catálogo de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
