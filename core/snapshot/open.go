package snapshot

import (
	"context"
	"fmt"

	"untis-notifier/core/database"
	"untis-notifier/core/kv"
	"untis-notifier/core/reconcile"
	"untis-notifier/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies carries the connection settings of every backend; Open only
// uses the one selected by Config.Backend.
type Dependencies struct {
	Database database.Config
	Storage  storage.Config
	Redis    kv.Config
}

// Open connects the configured backend and returns it as a reconcile.Store.
// The returned close function releases the underlying connection.
func Open(ctx context.Context, cfg Config, deps Dependencies, logger *zap.Logger) (reconcile.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendDatabase, "":
		db, err := database.Connect(deps.Database)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn, err := openGorm(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using database snapshot store", zap.String("driver", deps.Database.Driver))
		return store, closeFn, nil

	case BackendObject:
		client, err := storage.NewClient(deps.Storage)
		if err != nil {
			return nil, nil, err
		}
		created, err := storage.EnsureBucket(ctx, client, deps.Storage.Bucket, deps.Storage.Region)
		if err != nil {
			return nil, nil, err
		}
		if created {
			logger.Info("Created snapshot bucket", zap.String("bucket", deps.Storage.Bucket))
		}
		logger.Info("Using object snapshot store",
			zap.String("bucket", deps.Storage.Bucket),
			zap.String("prefix", cfg.Prefix))
		return NewObjectStore(client, deps.Storage.Bucket, cfg.Prefix), noop, nil

	case BackendRedis:
		client, err := kv.Connect(ctx, deps.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis snapshot store", zap.String("addr", deps.Redis.Addr), zap.String("prefix", cfg.Prefix))
		return NewRedisStore(client, cfg.Prefix), client.Close, nil

	case BackendMemory:
		logger.Warn("Using in-memory snapshot store, snapshots are lost on restart")
		return NewMemoryStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unsupported snapshot backend %q", cfg.Backend)
	}
}

// openGorm migrates the snapshot table on an open connection. The connection
// is closed when migration fails.
func openGorm(ctx context.Context, db *gorm.DB) (*GormStore, func() error, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	store := NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return store, sqlDB.Close, nil
}
