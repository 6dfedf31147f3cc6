package repository

import (
	"context"
	"fmt"

	"tallerpro/internal/infrastructure/config"
	"tallerpro/internal/infrastructure/database"
	"tallerpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Stores are the repositories of the configured driver.
type Stores struct {
	Orders interfaces.IOrderRepository
	Ledger interfaces.ILedgerRepository
	Users  interfaces.IUserRepository
	close  func()
}

func (s Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores connects to the store selected by cfg.StoreDriver. With migrate
// set it also creates the schema (goose migrations or DynamoDB tables).
func OpenStores(ctx context.Context, cfg *config.Config, migrate bool, log *zap.Logger) (Stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURI)
		if err != nil {
			return Stores{}, err
		}
		if migrate {
			if err := database.MigratePostgres(ctx, pool); err != nil {
				pool.Close()
				return Stores{}, err
			}
			log.Info("[store][postgres] migrations applied")
		}
		return Stores{
			Orders: NewOrderPostgresRepository(pool),
			Ledger: NewLedgerPostgresRepository(pool),
			Users:  NewUserPostgresRepository(pool),
			close:  pool.Close,
		}, nil

	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return Stores{}, fmt.Errorf("dynamodb config: %w", err)
		}
		if migrate {
			if err := database.EnsureTables(ctx, ddb, cfg.DynamoDB.Tables, log); err != nil {
				return Stores{}, err
			}
		}
		tables := cfg.DynamoDB.Tables
		return Stores{
			Orders: NewOrderDynamoRepository(ddb, tables.Orders),
			Ledger: NewLedgerDynamoRepository(ddb, tables),
			Users:  NewUserDynamoRepository(ddb, tables.Users),
		}, nil
	}
	return Stores{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
