package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.OperationRepository = (*OperationRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ActionLogRepository = (*ActionLogRepo)(nil)
)

// ProductRepo productos sobre GORM (conexión o tx).
type ProductRepo struct {
	db *gorm.DB
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	m := productFromEntity(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err, "products.code") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.first(ctx, "code = ?", code)
}

// GetForUpdate SQLite bloquea la base entera al escribir; basta la lectura dentro de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProductRepo) first(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return m.toEntity(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":         p.Name,
		"code":         p.Code,
		"quantity":     p.Quantity,
		"price":        p.Price,
		"min_quantity": p.MinQuantity,
		"updated_at":   p.UpdatedAt.UTC(),
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error, "products.code") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity UPDATE condicional: quantity + delta >= 0.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, id string, delta int64) (int64, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&productModel{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("adjust quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		p, err := r.first(ctx, "id = ?", id)
		if err != nil {
			return 0, err
		}
		if p == nil {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrInsufficientStock
	}
	var qty int64
	if err := db.Model(&productModel{}).Where("id = ?", id).Pluck("quantity", &qty).Error; err != nil {
		return 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return qty, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("quantity <= min_quantity"))
}

func (r *ProductRepo) find(q *gorm.DB) ([]*entity.Product, error) {
	var rows []productModel
	if err := q.Order("name, code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productModel{})
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// OperationRepo operaciones sobre GORM.
type OperationRepo struct {
	db *gorm.DB
}

func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	m := operationModel{
		ID: op.ID, Date: op.Date.UTC(), Type: op.Type, ProductID: op.ProductID,
		Quantity: op.Quantity, Price: op.Price, CreatedBy: op.CreatedBy,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

func (r *OperationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Operation, error) {
	return r.find(r.db.WithContext(ctx).Order("date DESC, id").Limit(limit))
}

func (r *OperationRepo) ListBetween(ctx context.Context, from time.Time, to *time.Time) ([]*entity.Operation, error) {
	q := r.db.WithContext(ctx).Where("date >= ?", from.UTC())
	if to != nil {
		q = q.Where("date < ?", to.UTC())
	}
	return r.find(q.Order("date DESC, id"))
}

func (r *OperationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Operation, error) {
	return r.find(r.db.WithContext(ctx).Where("product_id = ?", productID).Order("date, id"))
}

func (r *OperationRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&operationModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete operations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *OperationRepo) find(q *gorm.DB) ([]*entity.Operation, error) {
	var rows []operationModel
	if err := q.Preload("Product").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	out := make([]*entity.Operation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// UserRepo usuarios sobre GORM.
type UserRepo struct {
	db *gorm.DB
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	m := userModel{ID: u.ID, Username: u.Username, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt.UTC()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		switch {
		case isUniqueViolation(err, "users.username"):
			return domain.ErrUsernameTaken
		case isUniqueViolation(err, "users.email"):
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "lower(email) = ?", strings.ToLower(email))
}

func (r *UserRepo) first(ctx context.Context, cond string, arg any) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return m.toEntity(), nil
}

// ActionLogRepo historial append-only sobre GORM.
type ActionLogRepo struct {
	db *gorm.DB
}

func (r *ActionLogRepo) Append(ctx context.Context, e *entity.ActionLog) error {
	m := actionLogModel{
		ID: e.ID, UserID: e.UserID, ActionType: e.ActionType, Description: e.Description, Timestamp: e.Timestamp.UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return fmt.Errorf("insert action log: %w", err)
	}
	return nil
}

func (r *ActionLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.ActionLog, error) {
	q := r.db.WithContext(ctx).Preload("User").Order("timestamp DESC, id")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []actionLogModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list action logs: %w", err)
	}
	out := make([]*entity.ActionLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, &entity.ActionLog{
			ID: m.ID, UserID: m.UserID, ActionType: m.ActionType, Description: m.Description,
			Timestamp: m.Timestamp, Username: m.User.Username,
		})
	}
	return out, nil
}
