package analytics_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

type reportEnv struct {
	store   *memory.Store
	reports *analytics.ReportUseCase
	engine  *inventory.StockEngine
	actor   entity.Actor
}

func newReportEnv(t *testing.T) *reportEnv {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{ID: "u-1", Username: "ana", Email: "ana@ejemplo.com"}))
	recorder := audit.NewLogger(store.ActionLogs(), zerolog.Nop())
	return &reportEnv{
		store:   store,
		reports: analytics.NewReportUseCase(store.Products(), store.Operations(), store, recorder),
		engine:  inventory.NewStockEngine(store, recorder, nil),
		actor:   entity.AsUser("u-1"),
	}
}

func (e *reportEnv) seed(t *testing.T, code string, qty, minQty int64, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{ID: uuid.NewString(), Name: code, Code: code, Quantity: qty, MinQuantity: minQty, Price: decimal.RequireFromString(price)}
	require.NoError(t, e.store.Products().Create(context.Background(), p))
	return p
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestLowStock_ConjuntoGenerado(t *testing.T) {
	e := newReportEnv(t)
	rng := rand.New(rand.NewSource(7))

	want := map[string]bool{}
	for i := 0; i < 60; i++ {
		qty, minQty := int64(rng.Intn(10)), int64(rng.Intn(10))
		p := e.seed(t, string(rune('A'+i%26))+string(rune('a'+i/26)), qty, minQty, "1")
		if qty <= minQty {
			want[p.ID] = true
		}
	}

	low, err := e.reports.LowStock(context.Background())
	require.NoError(t, err)
	got := map[string]bool{}
	for _, p := range low {
		got[p.ID] = true
		assert.True(t, p.LowStock)
	}
	assert.Equal(t, want, got)
}

func TestTotals(t *testing.T) {
	e := newReportEnv(t)
	e.seed(t, "A", 3, 0, "2.50")
	e.seed(t, "B", 2, 0, "10")

	totals, err := e.reports.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), totals.TotalItems)
	assert.True(t, decimal.RequireFromString("27.5").Equal(totals.TotalValue))
}

func TestRecentOperations(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()
	p := e.seed(t, "A", 0, 0, "1")
	for i := 1; i <= 4; i++ {
		_, err := e.engine.ApplyIncoming(ctx, e.actor, p.ID, int64(i), decimal.Zero, day(2024, 1, i))
		require.NoError(t, err)
	}

	ops, err := e.reports.RecentOperations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, int64(4), ops[0].Quantity)
	assert.Equal(t, int64(3), ops[1].Quantity)
	assert.Equal(t, "A", ops[0].ProductCode)

	_, err = e.reports.RecentOperations(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperationsInRange_IncluyeDiaFinal(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()
	p := e.seed(t, "A", 0, 0, "1")
	for _, at := range []time.Time{
		day(2024, 2, 29).Add(23 * time.Hour),
		day(2024, 3, 1),
		day(2024, 3, 31).Add(23*time.Hour + 59*time.Minute),
		day(2024, 4, 1),
	} {
		_, err := e.engine.ApplyIncoming(ctx, e.actor, p.ID, 1, decimal.Zero, at)
		require.NoError(t, err)
	}

	start, end := day(2024, 3, 1), day(2024, 3, 31)
	ops, err := e.reports.OperationsInRange(ctx, &start, &end)
	require.NoError(t, err)
	assert.Len(t, ops, 2)

	_, err = e.reports.OperationsInRange(ctx, &end, &start)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin fechas: últimos 30 días, ninguna de las anteriores
	ops, err = e.reports.OperationsInRange(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestReport_AuditaSoloConRango(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()
	e.seed(t, "A", 1, 5, "2")

	r, err := e.reports.Report(ctx, e.actor, nil, nil)
	require.NoError(t, err)
	assert.Len(t, r.LowStock, 1)
	assert.Nil(t, r.To)

	logs, err := e.store.ActionLogs().List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)

	start, end := day(2024, 1, 1), day(2024, 1, 31)
	r, err = e.reports.Report(ctx, e.actor, &start, &end)
	require.NoError(t, err)
	require.NotNil(t, r.To)
	assert.Equal(t, day(2024, 2, 1), *r.To)

	logs, err = e.store.ActionLogs().List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionGenerateReport, logs[0].ActionType)
	assert.Equal(t, "Reporte generado para el período: 2024-01-01 - 2024-01-31", logs[0].Description)
}

func TestDashboard(t *testing.T) {
	e := newReportEnv(t)
	ctx := context.Background()
	p := e.seed(t, "A", 0, 1, "3")
	e.seed(t, "B", 9, 1, "1")
	for i := 0; i < 7; i++ {
		_, err := e.engine.ApplyIncoming(ctx, e.actor, p.ID, 1, decimal.Zero, time.Time{})
		require.NoError(t, err)
	}

	d, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Products, 2)
	assert.Empty(t, d.LowStock)
	assert.Len(t, d.RecentOperations, 5)
	assert.True(t, decimal.NewFromInt(30).Equal(d.TotalValue))
}

type fakeRenderer struct{ got *dto.ReportResponse }

func (f *fakeRenderer) Render(_ context.Context, r *dto.ReportResponse) ([]byte, error) {
	f.got = r
	return []byte("doc"), nil
}

func (f *fakeRenderer) ContentType() string { return "text/plain" }

func TestExport(t *testing.T) {
	e := newReportEnv(t)
	r := &fakeRenderer{}
	uc := analytics.NewExportUseCase(e.reports, map[string]analytics.ReportRenderer{"txt": r})

	doc, ct, ok, err := uc.Export(context.Background(), e.actor, "txt", nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "doc", string(doc))
	assert.Equal(t, "text/plain", ct)
	assert.NotNil(t, r.got)

	_, _, ok, err = uc.Export(context.Background(), e.actor, "csv", nil, nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}
