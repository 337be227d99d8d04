package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newProduct(id, code string, qty, min int64, price string) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID: id, Name: "Producto " + code, Code: code, Quantity: qty, MinQuantity: min,
		Price: decimal.RequireFromString(price), CreatedAt: now, UpdatedAt: now,
	}
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "file:inv.db?_foreign_keys=on", withForeignKeys("inv.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "file:x?_fk=1", withForeignKeys("file:x?_fk=1"))
}

func TestProductRepo_CRUDyCodigoUnico(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repo := s.Products()

	require.NoError(t, repo.Create(ctx, newProduct("p1", "A1", 10, 2, "2.25")))
	assert.ErrorIs(t, repo.Create(ctx, newProduct("p2", "A1", 1, 0, "1")), domain.ErrDuplicateCode)

	got, err := repo.GetByCode(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("2.25").Equal(got.Price))

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.Name = "Renombrado"
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, got))
	again, _ := repo.GetByID(ctx, "p1")
	assert.Equal(t, "Renombrado", again.Name)

	assert.ErrorIs(t, repo.Update(ctx, newProduct("nope", "Z9", 0, 0, "0")), domain.ErrNotFound)
}

func TestProductRepo_AdjustQuantityCondicional(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	repo := s.Products()
	require.NoError(t, repo.Create(ctx, newProduct("p1", "A1", 10, 2, "1")))

	_, err := repo.AdjustQuantity(ctx, "p1", -15)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repo.AdjustQuantity(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	qty, err := repo.AdjustQuantity(ctx, "p1", -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	low, err := repo.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A1", low[0].Code)
}

func TestRun_RollbackSinEfectos(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "A1", 10, 2, "1")))
	boom := errors.New("boom")

	err := s.Run(ctx, func(pr repository.ProductRepository, or repository.OperationRepository) error {
		if _, err := pr.AdjustQuantity(ctx, "p1", 5); err != nil {
			return err
		}
		if err := or.Create(ctx, &entity.Operation{ID: "o1", Date: time.Now(), Type: entity.OperationIncoming, ProductID: "p1", Quantity: 5, Price: decimal.Zero}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, int64(10), p.Quantity)
	ops, err := s.Operations().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestOperationRepo_FKYRangos(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "A1", 0, 0, "1")))

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"o1", "o2", "o3"} {
		require.NoError(t, s.Operations().Create(ctx, &entity.Operation{
			ID: id, Date: base.AddDate(0, 0, i), Type: entity.OperationIncoming,
			ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(3),
		}))
	}

	to := base.AddDate(0, 0, 2)
	ops, err := s.Operations().ListBetween(ctx, base, &to)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "o2", ops[0].ID)
	assert.Equal(t, "A1", ops[0].ProductCode)

	// FK RESTRICT: el producto no se borra con operaciones vivas
	assert.Error(t, s.Products().Delete(ctx, "p1"))

	n, err := s.Operations().DeleteByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, s.Products().Delete(ctx, "p1"))
}

func TestUserYActionLogRepos(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Username: "ana", Email: "ana@x.com", PasswordHash: "h"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{ID: "u2", Username: "ana", Email: "b@x.com", PasswordHash: "h"}), domain.ErrUsernameTaken)
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.User{ID: "u3", Username: "bea", Email: "ana@x.com", PasswordHash: "h"}), domain.ErrEmailTaken)

	now := time.Now().UTC()
	require.NoError(t, s.ActionLogs().Append(ctx, &entity.ActionLog{ID: "a1", UserID: "u1", ActionType: entity.ActionUserLogin, Timestamp: now}))
	require.NoError(t, s.ActionLogs().Append(ctx, &entity.ActionLog{ID: "a2", UserID: "u1", ActionType: entity.ActionUserLogout, Timestamp: now.Add(time.Second)}))
	assert.Error(t, s.ActionLogs().Append(ctx, &entity.ActionLog{ID: "a3", UserID: "fantasma", Timestamp: now}))

	list, err := s.ActionLogs().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "ana", list[0].Username)

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.TotalValue.IsZero())
}
