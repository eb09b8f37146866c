package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/nitesh/trends_service/internal/config"
	"github.com/nitesh/trends_service/internal/service"
	"github.com/nitesh/trends_service/internal/store"
)

// openStore builds the configured backend once for the life of the process.
// The returned func releases its connections.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (service.TrendStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		return store.NewRestStore(cfg.SupabaseURL, cfg.SupabaseKey), func() {}, nil

	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		// simple ping + wait (db might be starting in docker)
		for i := 0; i < 10; i++ {
			if err = db.PingContext(ctx); err == nil {
				break
			}
			logger.Warn("waiting for db", "attempt", i+1, "err", err)
			select {
			case <-ctx.Done():
				db.Close()
				return nil, nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("could not connect to db: %w", err)
		}
		if err := store.RunMigrations(db, cfg.TrendsTable); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return store.NewPgStore(db), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis ping failed", "err", err)
		}
		return store.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
}
