package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/analytics"
	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/auth"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/export"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventory-ledger-test"
	testPassword  = "clave-segura-123"
)

type testEnv struct {
	app   *fiber.App
	store *memory.Store
	auth  *auth.AuthUseCase
}

// newTestEnv arma la API completa sobre el store en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	log := zerolog.Nop()

	recorder := audit.NewLogger(store.ActionLogs(), log)
	authUC := auth.NewAuthUseCase(store.Users(), recorder, cache.NewMemoryDenylist(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	})
	reports := analytics.NewReportUseCase(store.Products(), store.Operations(), store, recorder)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(store.Products(), store, recorder, nil),
		StockEngine: inventory.NewStockEngine(store, recorder, nil),
		Reports:     reports,
		Exports: analytics.NewExportUseCase(reports, map[string]analytics.ReportRenderer{
			"pdf": export.NewPDFRenderer("test"),
			"xml": export.NewXMLRenderer(),
		}),
		Replenishment: inventory.NewReplenishmentUseCase(store.Products()),
		Audit:         recorder,
		Log:           log,
	})
	return &testEnv{app: app, store: store, auth: authUC}
}

// do lanza la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// signup registra al usuario y devuelve su token.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: username, Email: username + "@ejemplo.com", Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: testPassword})
	require.Equal(t, http.StatusOK, status)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}
