package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// Recorder registra acciones de usuario. Es best-effort: no devuelve error.
type Recorder interface {
	Record(ctx context.Context, actor entity.Actor, actionType, description string)
}

// Logger implementa Recorder sobre el repositorio append-only del historial.
// Los fallos de almacenamiento solo se reportan en el log operativo.
type Logger struct {
	repo repository.ActionLogRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewLogger construye el registrador de auditoría.
func NewLogger(repo repository.ActionLogRepository, log zerolog.Logger) *Logger {
	return &Logger{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Record añade una entrada atribuida al actor. Actor anónimo: no hace nada.
func (l *Logger) Record(ctx context.Context, actor entity.Actor, actionType, description string) {
	if !actor.Authenticated() {
		return
	}
	entry := &entity.ActionLog{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		ActionType:  actionType,
		Description: description,
		Timestamp:   l.now(),
	}
	if err := l.repo.Append(ctx, entry); err != nil {
		l.log.Error().Err(err).
			Str("user_id", actor.UserID).
			Str("action", actionType).
			Msg("registrar acción en historial")
	}
}

// List devuelve el historial ordenado por timestamp descendente.
func (l *Logger) List(ctx context.Context, page dto.PageRequest) (*dto.ActionLogListResponse, error) {
	list, err := l.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	return &dto.ActionLogListResponse{
		Items: dto.ToActionLogResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Nop descarta todas las acciones.
type Nop struct{}

// Record no hace nada.
func (Nop) Record(context.Context, entity.Actor, string, string) {}
