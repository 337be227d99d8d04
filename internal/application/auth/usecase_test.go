package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/auth"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	uc := auth.NewAuthUseCase(store.Users(), audit.NewLogger(store.ActionLogs(), zerolog.Nop()), cache.NewMemoryDenylist(),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "test"})
	return uc, store
}

func actionTypes(t *testing.T, store *memory.Store) []string {
	t.Helper()
	list, err := store.ActionLogs().List(context.Background(), 0, 0)
	require.NoError(t, err)
	out := make([]string, 0, len(list))
	for _, l := range list {
		out = append(out, l.ActionType)
	}
	return out
}

func TestRegisterUser(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, entity.Anonymous, dto.RegisterRequest{
		Username: " ana ", Email: "Ana@Ejemplo.com", Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "ana@ejemplo.com", u.Email)

	stored, err := store.Users().GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)
	assert.Empty(t, actionTypes(t, store), "registro anónimo no se audita")

	_, err = uc.RegisterUser(ctx, entity.Anonymous, dto.RegisterRequest{Username: "ana", Email: "b@ejemplo.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	_, err = uc.RegisterUser(ctx, entity.Anonymous, dto.RegisterRequest{Username: "bea", Email: "ANA@ejemplo.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	_, err = uc.RegisterUser(ctx, entity.Anonymous, dto.RegisterRequest{Username: "  ", Email: "c@ejemplo.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un usuario con sesión da de alta a otro: queda registrado a su nombre
	_, err = uc.RegisterUser(ctx, entity.AsUser(stored.ID), dto.RegisterRequest{Username: "bea", Email: "bea@ejemplo.com", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.ActionUserRegistration}, actionTypes(t, store))
}

func TestLoginAuthenticateLogout(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, entity.Anonymous, dto.RegisterRequest{Username: "ana", Email: "ana@ejemplo.com", Password: "clave-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "ana", out.User.Username)

	session, err := uc.Authenticate(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, session.UserID)
	assert.NotEmpty(t, session.TokenID)

	_, err = uc.Authenticate(ctx, "no.es.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.Logout(ctx, session))
	_, err = uc.Authenticate(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "token revocado")

	assert.ElementsMatch(t, []string{entity.ActionUserLogin, entity.ActionUserLogout}, actionTypes(t, store))

	assert.ErrorIs(t, uc.Logout(ctx, nil), domain.ErrUnauthorized)
}
