package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/customers-api/internal/config"
	"github.com/jmehdipour/customers-api/internal/db"
	httpSrv "github.com/jmehdipour/customers-api/internal/http"
	"github.com/jmehdipour/customers-api/internal/repository"
	"go.uber.org/zap"
)

const (
	driverMemory = "memory"
	driverRedis  = "redis"
)

// store is the repository selected by storage.driver together with its
// readiness check and a func releasing the underlying connection.
type store struct {
	repo  repository.CustomersRepository
	ready httpSrv.ReadinessCheck
	close func()
}

// openStore builds the customers repository selected by storage.driver.
// Relational stores are migrated before they are returned.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*store, error) {
	switch cfg.Storage.Driver {
	case "", driverMemory:
		log.Info("storage: in-memory")
		return &store{repo: repository.NewMemoryCustomersRepository(), close: func() {}}, nil

	case driverRedis:
		client, err := db.NewRedisClient(ctx, db.RedisOpts{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		log.Info("storage: redis", zap.String("addr", cfg.Redis.Addr))
		return &store{
			repo:  repository.NewRedisCustomersRepository(client),
			ready: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: func() { _ = client.Close() },
		}, nil

	default:
		return openGormStore(ctx, cfg, log)
	}
}

func openGormStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*store, error) {
	sqlDB, err := db.NewSQLConnection(cfg.Storage.Driver, cfg.Database.DSN, db.SQLOpts{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		PingTimeout:     cfg.Database.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", cfg.Storage.Driver, err)
	}

	gdb, err := db.NewGorm(cfg.Storage.Driver, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gorm: %w", err)
	}

	repo := repository.NewGormCustomersRepository(gdb)
	if err := repo.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	health := repository.NewSQLHealth(sqlDB)
	n, err := health.CountCustomers(ctx)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info("storage: relational", zap.String("dialect", cfg.Storage.Driver), zap.Int("customers", n))

	return &store{
		repo:  repo,
		ready: health.Check,
		close: func() { _ = sqlDB.Close() },
	}, nil
}
