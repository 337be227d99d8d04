package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados en la base.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Totals valor total (Σ quantity × price) y unidades totales del inventario.
func (r *ReportRepo) Totals(ctx context.Context) (repository.Totals, error) {
	var t repository.Totals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity * price), 0), COALESCE(SUM(quantity), 0)::bigint
		FROM products`).Scan(&t.TotalValue, &t.TotalItems)
	if err != nil {
		return repository.Totals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}
