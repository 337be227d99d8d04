package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventory-ledger/pkg/config"
)

// storage repositorios del backend elegido con DB_DRIVER.
type storage struct {
	products   repository.ProductRepository
	operations repository.OperationRepository
	users      repository.UserRepository
	actionLogs repository.ActionLogRepository
	reports    repository.ReportRepository
	txRunner   inventory.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg config.DBConfig) (*storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.Migrate {
			if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &storage{
			products:   postgres.NewProductRepository(pool),
			operations: postgres.NewOperationRepository(pool),
			users:      postgres.NewUserRepository(pool),
			actionLogs: postgres.NewActionLogRepository(pool),
			reports:    postgres.NewReportRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			products:   store.Products(),
			operations: store.Operations(),
			users:      store.Users(),
			actionLogs: store.ActionLogs(),
			reports:    store,
			txRunner:   store,
			close:      func() { _ = store.Close() },
		}, nil

	case config.DriverMemory:
		store := memory.New()
		return &storage{
			products:   store.Products(),
			operations: store.Operations(),
			users:      store.Users(),
			actionLogs: store.ActionLogs(),
			reports:    store,
			txRunner:   store,
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %s", cfg.Driver)
}
