// Package cache opens the local session cache selected by configuration.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"

	"github.com/CauaPrates/organiza-ai-app/config"
	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	integrationcache "github.com/CauaPrates/organiza-ai-app/internal/integration/cache"
)

// Connection holds the opened cache and the resource behind it.
type Connection struct {
	Cache adapter.LocalCache
	close func() error
}

// Close releases the underlying client or file.
func (c *Connection) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// Open connects to the configured backend. The "none" driver yields a nil
// Cache, which disables caching.
func Open(ctx context.Context, cfg *config.CacheConfig, redisCfg *config.RedisConfig) (*Connection, error) {
	switch cfg.Driver {
	case config.CacheDriverNone, "":
		slog.Info("Local cache disabled")
		return &Connection{}, nil

	case config.CacheDriverRedis:
		opts, err := redis.ParseURL(redisCfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}

		slog.Info("Local cache connected", "driver", cfg.Driver, "addr", opts.Addr)
		return &Connection{
			Cache: integrationcache.NewRedisCache(client, cfg.KeyPrefix),
			close: client.Close,
		}, nil

	case config.CacheDriverBolt:
		db, err := bolt.Open(cfg.BoltPath, 0o600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt file: %w", err)
		}
		c, err := integrationcache.NewBoltCache(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		slog.Info("Local cache opened", "driver", cfg.Driver, "path", cfg.BoltPath)
		return &Connection{Cache: c, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
