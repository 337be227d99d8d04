package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo historial append-only en memoria.
type ActionLogRepo struct {
	s *Store
}

// Append exige que el usuario exista (FK action_logs.user_id).
func (r *ActionLogRepo) Append(_ context.Context, e *entity.ActionLog) error {
	return r.s.write(nil, func(d *dataset) error {
		if _, ok := d.users[e.UserID]; !ok {
			return fmt.Errorf("insert action log: usuario %s inexistente", e.UserID)
		}
		stored := *e
		stored.Username = ""
		d.actions = append(d.actions, stored)
		return nil
	})
}

func (r *ActionLogRepo) List(_ context.Context, limit, offset int) ([]*entity.ActionLog, error) {
	var list []*entity.ActionLog
	err := r.s.read(nil, func(d *dataset) error {
		for i := len(d.actions) - 1; i >= 0; i-- {
			e := d.actions[i]
			e.Username = d.users[e.UserID].Username
			list = append(list, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	if offset > 0 {
		if offset >= len(list) {
			return nil, nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
