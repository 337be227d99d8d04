package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo historial de acciones append-only.
type ActionLogRepo struct {
	q Querier
}

// NewActionLogRepository construye el adaptador.
func NewActionLogRepository(q Querier) *ActionLogRepo {
	return &ActionLogRepo{q: q}
}

// Append inserta una entrada.
func (r *ActionLogRepo) Append(ctx context.Context, e *entity.ActionLog) error {
	query := `
		INSERT INTO action_logs (id, user_id, action_type, description, timestamp)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.UserID, e.ActionType, e.Description, e.Timestamp); err != nil {
		return fmt.Errorf("insert action log: %w", err)
	}
	return nil
}

// List entradas con el username del autor, timestamp descendente. limit <= 0 = todas.
func (r *ActionLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActionLog, error) {
	query := `
		SELECT a.id, a.user_id, a.action_type, a.description, a.timestamp, u.username
		FROM action_logs a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.timestamp DESC, a.id
		OFFSET $1`
	args := []any{max(offset, 0)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list action logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActionLog
	for rows.Next() {
		var e entity.ActionLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.Description, &e.Timestamp, &e.Username); err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
