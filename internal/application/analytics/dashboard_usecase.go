package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

const dashboardRecentOperations = 5 // operaciones en el widget del dashboard

// Dashboard construye el tablero principal: catálogo, stock bajo, últimas operaciones y valor total.
// Las cuatro lecturas son independientes y se lanzan en paralelo.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type opsResult struct {
		list []*entity.Operation
		err  error
	}
	type totalsResult struct {
		totals dto.TotalsResponse
		err    error
	}

	allCh := make(chan productsResult, 1)
	lowCh := make(chan productsResult, 1)
	opsCh := make(chan opsResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		allCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.productRepo.ListLowStock(ctx)
		lowCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.operationRepo.ListRecent(ctx, dashboardRecentOperations)
		opsCh <- opsResult{list, err}
	}()
	go func() {
		t, err := uc.Totals(ctx)
		totalsCh <- totalsResult{t, err}
	}()

	all := <-allCh
	low := <-lowCh
	ops := <-opsCh
	totals := <-totalsCh

	if all.err != nil {
		return nil, domain.Persistence(fmt.Errorf("dashboard: productos: %w", all.err))
	}
	if low.err != nil {
		return nil, domain.Persistence(fmt.Errorf("dashboard: stock bajo: %w", low.err))
	}
	if ops.err != nil {
		return nil, domain.Persistence(fmt.Errorf("dashboard: operaciones recientes: %w", ops.err))
	}
	if totals.err != nil {
		return nil, totals.err
	}

	return &dto.DashboardResponse{
		Products:         dto.ToProductResponses(all.list),
		LowStock:         dto.ToProductResponses(low.list),
		RecentOperations: dto.ToOperationResponses(ops.list),
		TotalValue:       totals.totals.TotalValue,
	}, nil
}
