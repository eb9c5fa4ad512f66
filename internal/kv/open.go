package kv

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/metrics"
	"github.com/go-redis/redis/v8"
)

// Open builds the configured backend, wrapped with the optional read cache
// and with operation metrics when m is non-nil. The returned closer releases
// the backend.
func Open(ctx context.Context, cfg config.StorageConfig, m *metrics.Manager, log *slog.Logger) (Store, io.Closer, error) {
	var (
		store  Store
		closer io.Closer
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = db, db
		log.Info("sqlite store opened", "path", cfg.Path)

	case config.BackendFile:
		f, err := NewFile(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		store, closer = f, f
		log.Info("file store opened", "dir", cfg.Dir)

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("pinging redis at %s: %w", cfg.Redis.Addr, err)
		}
		r := NewRedis(client, cfg.Redis.Prefix)
		store, closer = r, r
		log.Info("redis store connected", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)

	case config.BackendMemory:
		mem := NewMemory()
		store, closer = mem, mem
		log.Warn("memory store in use: data is lost on exit")

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	if cfg.CacheMB > 0 {
		cached := NewCached(store, cfg.CacheMB)
		if m != nil {
			m.ObserveCacheHitRatio(cached.HitRate)
		}
		store = cached
		log.Debug("blob cache enabled", "size_mb", cfg.CacheMB)
	}
	if m != nil {
		store = NewInstrumented(store, cfg.Backend, m)
	}

	return store, closer, nil
}
