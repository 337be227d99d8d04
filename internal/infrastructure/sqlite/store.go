// Package sqlite implementa los puertos de persistencia con GORM sobre SQLite (despliegue de un nodo).
package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var (
	_ inventory.TxRunner          = (*Store)(nil)
	_ repository.ReportRepository = (*Store)(nil)
)

// Store agrupa la conexión GORM y los repositorios.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path, activa las claves foráneas y migra el esquema.
// Una sola conexión: SQLite admite un escritor a la vez y así las transacciones se serializan.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// New envuelve una conexión GORM existente.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate crea o actualiza las tablas.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&userModel{}, &productModel{}, &operationModel{}, &actionLogModel{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Products() *ProductRepo     { return &ProductRepo{db: s.db} }
func (s *Store) Operations() *OperationRepo { return &OperationRepo{db: s.db} }
func (s *Store) Users() *UserRepo           { return &UserRepo{db: s.db} }
func (s *Store) ActionLogs() *ActionLogRepo { return &ActionLogRepo{db: s.db} }

// Run ejecuta fn dentro de db.Transaction: Commit si devuelve nil, Rollback si no.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProductRepo{db: tx}, &OperationRepo{db: tx})
	})
}

// Totals se suma en Go para conservar la precisión decimal de los precios.
func (s *Store) Totals(ctx context.Context) (repository.Totals, error) {
	var rows []productModel
	if err := s.db.WithContext(ctx).Select("quantity", "price").Find(&rows).Error; err != nil {
		return repository.Totals{}, fmt.Errorf("inventory totals: %w", err)
	}
	t := repository.Totals{TotalValue: decimal.Zero}
	for _, r := range rows {
		t.TotalValue = t.TotalValue.Add(r.Price.Mul(decimal.NewFromInt(r.Quantity)))
		t.TotalItems += r.Quantity
	}
	return t, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + sep + "_foreign_keys=on"
}

func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
