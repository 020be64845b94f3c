package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/lolstats/internal/config"
	"github.com/albapepper/lolstats/internal/store"
)

// OpenStore connects the store selected by cfg.StoreDriver. The returned
// close func releases the pool or file handle.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		st, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return st, func() { st.Close() }, nil
	default:
		pool, err := New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgres(pool.Pool), pool.Close, nil
	}
}

// Migrate creates the schema for the configured driver. SQLite applies its
// schema on open.
func Migrate(ctx context.Context, cfg *config.Config) error {
	if cfg.StoreDriver == config.DriverSQLite {
		st, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		return st.Close()
	}

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())
	return store.ApplyPostgresSchema(ctx, conn)
}
