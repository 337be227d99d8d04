package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ledger/internal/application/audit"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

// ProductUseCase ciclo de vida de productos: alta, edición y baja con cascada de operaciones.
// Cada escritura corre en su propia transacción; la auditoría se registra después del Commit.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	audit    audit.Recorder
	notifier inventory.StockNotifier
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	recorder audit.Recorder,
	notifier inventory.StockNotifier,
) *ProductUseCase {
	if notifier == nil {
		notifier = inventory.NopNotifier{}
	}
	return &ProductUseCase{
		repo:     repo,
		txRunner: txRunner,
		audit:    recorder,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func validProduct(p *entity.Product) bool {
	return p.Name != "" && p.Code != "" &&
		p.Quantity >= 0 && p.MinQuantity >= 0 && !p.Price.IsNegative()
}

// Create crea un producto. ErrDuplicateCode si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.TrimSpace(in.Code),
		Quantity:    in.Quantity,
		Price:       in.Price,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !validProduct(product) {
		return nil, domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OperationRepository) error {
		existing, err := productRepo.GetByCode(ctx, product.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateCode
		}
		// El índice único cubre la carrera entre la verificación y el INSERT
		return productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, domain.Persistence(err)
	}

	uc.audit.Record(ctx, actor, entity.ActionAddProduct,
		fmt.Sprintf("Producto agregado: %s (código: %s)", product.Name, product.Code))
	uc.publish(ctx, actor, inventory.EventProductCreated, product, product.Quantity)
	out := dto.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// History devuelve el kardex del producto. La apertura es la cantidad actual menos el neto de
// sus operaciones; incluye altas y ajustes manuales que no pasan por el motor de stock.
func (uc *ProductUseCase) History(ctx context.Context, id string) (*dto.ProductHistoryResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var (
		product *entity.Product
		ops     []*entity.Operation
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, operationRepo repository.OperationRepository) error {
		var err error
		if product, err = productRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		ops, err = operationRepo.ListByProduct(ctx, id)
		return err
	})
	if err != nil {
		return nil, domain.Persistence(err)
	}

	var net int64
	for _, op := range ops {
		net += op.Delta()
	}
	opening := product.Quantity - net
	entries := make([]dto.HistoryEntry, 0, len(ops))
	balance := opening
	for i := range ops {
		balance = domaininv.Replay(balance, ops[i:i+1])
		entries = append(entries, dto.HistoryEntry{OperationResponse: dto.ToOperationResponse(ops[i]), Balance: balance})
	}
	return &dto.ProductHistoryResponse{
		Product:         dto.ToProductResponse(product),
		OpeningQuantity: opening,
		Operations:      entries,
	}, nil
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Persistence(err)
	}
	items := dto.ToProductResponses(list)
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update aplica los campos presentes. ErrNotFound si no existe; ErrDuplicateCode si el nuevo
// código pertenece a otro producto. El historial solo menciona nombre, cantidad y precio cambiados.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	var before, after entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.OperationRepository) error {
		current, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		before = *current
		updated := *current
		if in.Name != nil {
			updated.Name = strings.TrimSpace(*in.Name)
		}
		if in.Code != nil {
			updated.Code = strings.TrimSpace(*in.Code)
		}
		if in.Quantity != nil {
			updated.Quantity = *in.Quantity
		}
		if in.Price != nil {
			updated.Price = *in.Price
		}
		if in.MinQuantity != nil {
			updated.MinQuantity = *in.MinQuantity
		}
		if !validProduct(&updated) {
			return domain.ErrInvalidInput
		}
		if updated.Code != before.Code {
			other, err := productRepo.GetByCode(ctx, updated.Code)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return domain.ErrDuplicateCode
			}
		}
		updated.UpdatedAt = uc.now()
		if err := productRepo.Update(ctx, &updated); err != nil {
			return err
		}
		after = updated
		return nil
	})
	if err != nil {
		return nil, domain.Persistence(err)
	}

	desc := fmt.Sprintf("Producto actualizado (código: %s): sin cambios en nombre, cantidad o precio", after.Code)
	if changes := domaininv.ProductChanges(&before, &after); len(changes) > 0 {
		desc = fmt.Sprintf("Producto actualizado (código: %s): cambió %s", after.Code, strings.Join(changes, ", "))
	}
	uc.audit.Record(ctx, actor, entity.ActionUpdateProduct, desc)
	uc.publish(ctx, actor, inventory.EventProductUpdated, &after, after.Quantity-before.Quantity)
	out := dto.ToProductResponse(&after)
	return &out, nil
}

// Delete elimina el producto y, antes, todas sus operaciones (misma transacción).
// El historial usa nombre y código capturados antes de borrar.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if !entity.ValidID(id) {
		return domain.ErrNotFound
	}
	var removed entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, operationRepo repository.OperationRepository) error {
		current, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		removed = *current
		if _, err := operationRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return domain.Persistence(err)
	}

	uc.audit.Record(ctx, actor, entity.ActionDeleteProduct,
		fmt.Sprintf("Producto eliminado: %s (código: %s)", removed.Name, removed.Code))
	removedQty := removed.Quantity
	removed.Quantity = 0
	uc.publish(ctx, actor, inventory.EventProductDeleted, &removed, -removedQty)
	return nil
}

func (uc *ProductUseCase) publish(ctx context.Context, actor entity.Actor, action string, p *entity.Product, delta int64) {
	uc.notifier.NotifyStock(ctx, inventory.StockEvent{
		Type:        "stock_update",
		Action:      action,
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductCode: p.Code,
		Quantity:    p.Quantity,
		Delta:       delta,
		LowStock:    action != inventory.EventProductDeleted && p.IsLowStock(),
		UserID:      actor.UserID,
		At:          uc.now(),
	})
}
