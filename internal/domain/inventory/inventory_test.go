package inventory_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta / Replay
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_EntradaSuma(t *testing.T) {
	q, err := inventory.ApplyDelta(10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), q)
}

func TestApplyDelta_SalidaHastaCero(t *testing.T) {
	q, err := inventory.ApplyDelta(10, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q)
}

func TestApplyDelta_SalidaMayorQueStock(t *testing.T) {
	q, err := inventory.ApplyDelta(10, -15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), q, "la cantidad no debe cambiar si falla")
}

func TestApplyDelta_DesbordeEsEntradaInvalida(t *testing.T) {
	q, err := inventory.ApplyDelta(10, math.MaxInt64)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), q)

	q, err = inventory.ApplyDelta(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), q)

	q, err = inventory.ApplyDelta(math.MaxInt64, -math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(0), q)
}

func TestReplay_InicialMasEntradasMenosSalidas(t *testing.T) {
	ops := []*entity.Operation{
		{Type: entity.OperationIncoming, Quantity: 5},
		{Type: entity.OperationOutgoing, Quantity: 3},
		{Type: entity.OperationIncoming, Quantity: 7},
	}
	assert.Equal(t, int64(11), inventory.Replay(2, ops))
}

// ──────────────────────────────────────────────────────────────────────────────
// ReportWindow
// ──────────────────────────────────────────────────────────────────────────────

func TestReportWindow_ConAmbasFechasIncluyeDiaFinal(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	w, err := inventory.ReportWindow(&start, &end, time.Now())
	require.NoError(t, err)
	require.NotNil(t, w.To)
	assert.Equal(t, start, w.From)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *w.To)

	assert.True(t, w.Contains(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
}

func TestReportWindow_SinFechasUltimos30Dias(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	w, err := inventory.ReportWindow(nil, nil, now)
	require.NoError(t, err)
	assert.Nil(t, w.To)
	assert.Equal(t, now.AddDate(0, 0, -30), w.From)
	assert.True(t, w.Contains(now))
	assert.False(t, w.Contains(now.AddDate(0, 0, -31)))
}

func TestReportWindow_UnaSolaFechaUsaVentanaPorDefecto(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w, err := inventory.ReportWindow(&start, nil, now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), w.From)
}

func TestReportWindow_InicioPosteriorAlFin(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := inventory.ReportWindow(&start, &end, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductChanges
// ──────────────────────────────────────────────────────────────────────────────

func TestProductChanges_SoloCamposModificados(t *testing.T) {
	before := &entity.Product{Name: "Tornillo", Code: "A1", Quantity: 10, Price: decimal.RequireFromString("5.0"), MinQuantity: 2}
	after := *before
	after.Quantity = 12
	after.MinQuantity = 4 // no auditado

	changes := inventory.ProductChanges(before, &after)
	assert.Equal(t, []string{"cantidad de 10 a 12"}, changes)
}

func TestProductChanges_TodosLosCampos(t *testing.T) {
	before := &entity.Product{Name: "Tornillo", Quantity: 10, Price: decimal.RequireFromString("5")}
	after := &entity.Product{Name: "Tuerca", Quantity: 3, Price: decimal.RequireFromString("6.5")}

	changes := inventory.ProductChanges(before, after)
	require.Len(t, changes, 3)
	assert.Equal(t, "nombre de 'Tornillo' a 'Tuerca'", changes[0])
	assert.Equal(t, "cantidad de 10 a 3", changes[1])
	assert.Equal(t, "precio de 5 a 6.5", changes[2])
}

func TestProductChanges_PrecioEquivalenteNoCuenta(t *testing.T) {
	before := &entity.Product{Price: decimal.RequireFromString("5.0")}
	after := &entity.Product{Price: decimal.RequireFromString("5.00")}
	assert.Empty(t, inventory.ProductChanges(before, after))
}
