// Package analytics contiene la capa de consultas de solo lectura: stock bajo, totales,
// historial de operaciones por rango, tablero y reportes exportables.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ReportUseCase consultas agregadas. Nada se cachea: cada llamada refleja el último Commit.
type ReportUseCase struct {
	productRepo   repository.ProductRepository
	operationRepo repository.OperationRepository
	reportRepo    repository.ReportRepository
	audit         audit.Recorder
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	reportRepo repository.ReportRepository,
	recorder audit.Recorder,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:   productRepo,
		operationRepo: operationRepo,
		reportRepo:    reportRepo,
		audit:         recorder,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// LowStock productos con quantity <= min_quantity.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	return dto.ToProductResponses(list), nil
}

// RecentOperations últimas n operaciones por fecha descendente.
func (uc *ReportUseCase) RecentOperations(ctx context.Context, n int) ([]dto.OperationResponse, error) {
	if n <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.operationRepo.ListRecent(ctx, n)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	return dto.ToOperationResponses(list), nil
}

// OperationsInRange operaciones en [start, end + 1 día) o, sin ambas fechas, de los últimos 30 días.
func (uc *ReportUseCase) OperationsInRange(ctx context.Context, start, end *time.Time) ([]dto.OperationResponse, error) {
	w, err := inventory.ReportWindow(start, end, uc.now())
	if err != nil {
		return nil, err
	}
	list, err := uc.operationRepo.ListBetween(ctx, w.From, w.To)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	return dto.ToOperationResponses(list), nil
}

// Totals valor total Σ(quantity × price) y unidades totales Σ(quantity).
func (uc *ReportUseCase) Totals(ctx context.Context) (dto.TotalsResponse, error) {
	t, err := uc.reportRepo.Totals(ctx)
	if err != nil {
		return dto.TotalsResponse{}, domain.Persistence(err)
	}
	return dto.TotalsResponse{TotalValue: t.TotalValue, TotalItems: t.TotalItems}, nil
}

// Report arma el reporte por período. Con rango explícito queda registrado en el historial.
func (uc *ReportUseCase) Report(ctx context.Context, actor entity.Actor, start, end *time.Time) (*dto.ReportResponse, error) {
	now := uc.now()
	w, err := inventory.ReportWindow(start, end, now)
	if err != nil {
		return nil, err
	}
	low, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	ops, err := uc.operationRepo.ListBetween(ctx, w.From, w.To)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	totals, err := uc.Totals(ctx)
	if err != nil {
		return nil, err
	}

	if start != nil && end != nil {
		uc.audit.Record(ctx, actor, entity.ActionGenerateReport, fmt.Sprintf(
			"Reporte generado para el período: %s - %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	}

	return &dto.ReportResponse{
		From:       w.From,
		To:         w.To,
		LowStock:   low,
		Operations: dto.ToOperationResponses(ops),
		TotalValue: totals.TotalValue,
		TotalItems: totals.TotalItems,
		Generated:  now,
	}, nil
}
