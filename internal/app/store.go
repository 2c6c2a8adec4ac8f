package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shop24/shop24/internal/platform/db"
	"github.com/shop24/shop24/internal/shop"
	"github.com/shop24/shop24/internal/shop/memstore"
	"github.com/shop24/shop24/internal/shop/pgstore"
)

// OpenStore returns the entity store selected by APP_STORE and a function
// releasing its resources. With PG_AUTO_MIGRATE the schema is migrated before
// the pool is opened.
func OpenStore(ctx context.Context, cfg *Config, logger *slog.Logger) (shop.Store, func(), error) {
	switch cfg.AppStore {
	case StoreMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memstore.New(), func() {}, nil
	case StorePostgres:
		if cfg.PGAutoMigrate {
			if err := db.MigrateUp(cfg.PGDSN); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("database migrated")
		}
		pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.AppStore)
	}
}
