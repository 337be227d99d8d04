package audit_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

type fakeRepo struct {
	entries []*entity.ActionLog
	err     error
}

func (f *fakeRepo) Append(_ context.Context, e *entity.ActionLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeRepo) List(_ context.Context, limit, offset int) ([]*entity.ActionLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func TestRecord_Autenticado(t *testing.T) {
	repo := &fakeRepo{}
	l := audit.NewLogger(repo, zerolog.Nop())

	l.Record(context.Background(), entity.AsUser("u-1"), entity.ActionAddProduct, "Producto agregado")

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "u-1", e.UserID)
	assert.Equal(t, entity.ActionAddProduct, e.ActionType)
	assert.False(t, e.Timestamp.IsZero())
}

func TestRecord_Anonimo_NoHaceNada(t *testing.T) {
	repo := &fakeRepo{}
	audit.NewLogger(repo, zerolog.Nop()).Record(context.Background(), entity.Anonymous, entity.ActionAddProduct, "x")
	assert.Empty(t, repo.entries)
}

func TestRecord_FalloSoloVaAlLog(t *testing.T) {
	var buf bytes.Buffer
	repo := &fakeRepo{err: errors.New("conexión perdida")}
	l := audit.NewLogger(repo, zerolog.New(&buf))

	assert.NotPanics(t, func() {
		l.Record(context.Background(), entity.AsUser("u-1"), entity.ActionAddIncoming, "x")
	})
	assert.Contains(t, buf.String(), "conexión perdida")
	assert.Contains(t, buf.String(), entity.ActionAddIncoming)
}

func TestList_ClasificaErrores(t *testing.T) {
	repo := &fakeRepo{err: errors.New("timeout")}
	_, err := audit.NewLogger(repo, zerolog.Nop()).List(context.Background(), dto.PageRequest{Limit: 10})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
