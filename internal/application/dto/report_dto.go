package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalsResponse agregados del inventario.
type TotalsResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
	TotalItems int64           `json:"total_items"`
}

// DashboardResponse datos del tablero principal.
type DashboardResponse struct {
	Products         []ProductResponse   `json:"products"`
	LowStock         []ProductResponse   `json:"low_stock"`
	RecentOperations []OperationResponse `json:"recent_operations"`
	TotalValue       decimal.Decimal     `json:"total_value"`
}

// ReportResponse reporte por rango de fechas.
// To nil = ventana por defecto sin límite superior.
type ReportResponse struct {
	From       time.Time           `json:"from"`
	To         *time.Time          `json:"to,omitempty"`
	LowStock   []ProductResponse   `json:"low_stock"`
	Operations []OperationResponse `json:"operations"`
	TotalValue decimal.Decimal     `json:"total_value"`
	TotalItems int64               `json:"total_items"`
	Generated  time.Time           `json:"generated_at"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto con stock bajo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	Code               string          `json:"code"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	MinQuantity        int64           `json:"min_quantity"`
	IdealStock         int64           `json:"ideal_stock"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"`
}
