package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ActionLogRepository puerto append-only del historial: no hay Update ni Delete.
type ActionLogRepository interface {
	Append(ctx context.Context, entry *entity.ActionLog) error
	// List devuelve entradas por timestamp desc; limit <= 0 = todas.
	List(ctx context.Context, limit, offset int) ([]*entity.ActionLog, error)
}
