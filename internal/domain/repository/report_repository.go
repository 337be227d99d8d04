package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// Totals agregados del inventario.
type Totals struct {
	TotalValue decimal.Decimal // Σ quantity × price
	TotalItems int64           // Σ quantity
}

// ReportRepository consultas de solo lectura agregadas.
type ReportRepository interface {
	Totals(ctx context.Context) (Totals, error)
}
