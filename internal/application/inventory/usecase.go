package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// Formatos aceptados para la fecha de una operación (retroactiva).
var operationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseOperationDate interpreta la fecha enviada por el formulario. Vacía = zero time.
func ParseOperationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range operationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidInput
}

// RegisterFromRequest adapta el request HTTP al motor (ApplyIncoming / ApplyOutgoing según opType).
func (e *StockEngine) RegisterFromRequest(
	ctx context.Context, actor entity.Actor, opType string, in dto.RegisterOperationRequest,
) (*dto.OperationResponse, error) {
	at, err := ParseOperationDate(in.Date)
	if err != nil {
		return nil, err
	}
	var op *entity.Operation
	switch opType {
	case entity.OperationIncoming:
		op, err = e.ApplyIncoming(ctx, actor, in.ProductID, in.Quantity, in.Price, at)
	case entity.OperationOutgoing:
		op, err = e.ApplyOutgoing(ctx, actor, in.ProductID, in.Quantity, in.Price, at)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := dto.ToOperationResponse(op)
	return &out, nil
}
