package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// ToProductResponse convierte la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Quantity:    p.Quantity,
		Price:       p.Price,
		MinQuantity: p.MinQuantity,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToOperationResponse convierte una operación a su salida HTTP.
func ToOperationResponse(o *entity.Operation) OperationResponse {
	return OperationResponse{
		ID:          o.ID,
		Date:        o.Date,
		Type:        o.Type,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		ProductCode: o.ProductCode,
		Quantity:    o.Quantity,
		Price:       o.Price,
		Total:       o.Price.Mul(decimal.NewFromInt(o.Quantity)),
		CreatedBy:   o.CreatedBy,
	}
}

// ToOperationResponses convierte una lista; nunca devuelve nil.
func ToOperationResponses(list []*entity.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOperationResponse(o))
	}
	return out
}

// ToUserResponse convierte un usuario (sin hash).
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ToActionLogResponses convierte entradas del historial.
func ToActionLogResponses(list []*entity.ActionLog) []ActionLogResponse {
	out := make([]ActionLogResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ActionLogResponse{
			ID:          a.ID,
			UserID:      a.UserID,
			Username:    a.Username,
			ActionType:  a.ActionType,
			Description: a.Description,
			Timestamp:   a.Timestamp,
		})
	}
	return out
}
