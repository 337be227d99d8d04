package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// Los precios se guardan como TEXT para no perder precisión (SQLite no tiene NUMERIC exacto).

type productModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Name        string          `gorm:"size:100;not null"`
	Code        string          `gorm:"size:50;not null;uniqueIndex:idx_products_code"`
	Quantity    int64           `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0"`
	Price       decimal.Decimal `gorm:"type:text;not null"`
	MinQuantity int64           `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

type operationModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Date      time.Time       `gorm:"not null;index:idx_operations_date"`
	Type      string          `gorm:"size:10;not null"`
	ProductID string          `gorm:"size:36;not null;index:idx_operations_product"`
	Product   productModel    `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int64           `gorm:"not null;check:chk_operations_quantity,quantity > 0"`
	Price     decimal.Decimal `gorm:"type:text;not null"`
	CreatedBy string          `gorm:"size:36"`
}

func (operationModel) TableName() string { return "operations" }

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"size:80;not null;uniqueIndex:idx_users_username"`
	Email        string `gorm:"size:120;not null;uniqueIndex:idx_users_email"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type actionLogModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;not null"`
	User        userModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	ActionType  string    `gorm:"size:50;not null"`
	Description string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"not null;index:idx_action_logs_timestamp"`
}

func (actionLogModel) TableName() string { return "action_logs" }

func productFromEntity(p *entity.Product) productModel {
	return productModel{
		ID: p.ID, Name: p.Name, Code: p.Code, Quantity: p.Quantity, Price: p.Price,
		MinQuantity: p.MinQuantity, CreatedAt: p.CreatedAt.UTC(), UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (m *productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID: m.ID, Name: m.Name, Code: m.Code, Quantity: m.Quantity, Price: m.Price,
		MinQuantity: m.MinQuantity, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func (m *operationModel) toEntity() *entity.Operation {
	return &entity.Operation{
		ID: m.ID, Date: m.Date, Type: m.Type, ProductID: m.ProductID, Quantity: m.Quantity,
		Price: m.Price, CreatedBy: m.CreatedBy, ProductName: m.Product.Name, ProductCode: m.Product.Code,
	}
}

func (m *userModel) toEntity() *entity.User {
	return &entity.User{ID: m.ID, Username: m.Username, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}
