package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los productos con stock bajo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// idealStock = ceil(min_quantity × 1.5)
func idealStock(minQuantity int64) int64 {
	return (minQuantity*3 + 1) / 2
}

// GenerateReplenishmentList devuelve los productos en o bajo su mínimo con la cantidad
// sugerida de pedido, ordenados por mayor déficit (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		ideal := idealStock(p.MinQuantity)
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			Code:               p.Code,
			ProductName:        p.Name,
			CurrentStock:       p.Quantity,
			MinQuantity:        p.MinQuantity,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitPrice:          p.Price,
			EstimatedOrderCost: p.Price.Mul(decimal.NewFromInt(suggested)),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.MinQuantity - a.CurrentStock
		defB := b.MinQuantity - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.Code < b.Code
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
