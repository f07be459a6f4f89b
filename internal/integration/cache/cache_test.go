package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
	"github.com/CauaPrates/organiza-ai-app/internal/domain/entity"
)

func newRedisCache(t *testing.T) (adapter.LocalCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, "test:"), mr
}

func newBoltCache(t *testing.T) *boltCache {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "cache.db"), 0600, nil)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	c, err := NewBoltCache(db)
	if err != nil {
		t.Fatalf("new bolt cache: %v", err)
	}
	return c.(*boltCache)
}

func TestLocalCache_RoundTrip(t *testing.T) {
	redisImpl, _ := newRedisCache(t)
	caches := map[string]adapter.LocalCache{
		"redis": redisImpl,
		"bolt":  newBoltCache(t),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			bg := entity.DashboardBackground{Type: entity.BackgroundTypeColor, Value: "#FFFFFF"}

			var got entity.DashboardBackground
			found, err := c.Get(ctx, "user:1:background", &got)
			if err != nil || found {
				t.Fatalf("empty get = %v, %v", found, err)
			}

			if err := c.Set(ctx, "user:1:background", bg, 0); err != nil {
				t.Fatalf("set: %v", err)
			}
			found, err = c.Get(ctx, "user:1:background", &got)
			if err != nil || !found || got != bg {
				t.Fatalf("get = %v, %v, %v", got, found, err)
			}

			if err := c.Delete(ctx, "user:1:background", "missing"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			found, _ = c.Get(ctx, "user:1:background", &got)
			if found {
				t.Error("key survived delete")
			}
		})
	}
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "session:x", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("test:session:x") {
		t.Fatal("key not stored under prefix")
	}

	mr.FastForward(2 * time.Minute)

	var got map[string]string
	if found, _ := c.Get(ctx, "session:x", &got); found {
		t.Error("expired key still readable")
	}
}

func TestBoltCache_TTL(t *testing.T) {
	c := newBoltCache(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if found, err := c.Get(ctx, "k", &got); err != nil || !found || got != "v" {
		t.Fatalf("get before expiry = %q, %v, %v", got, found, err)
	}

	now = now.Add(time.Minute)
	if found, _ := c.Get(ctx, "k", &got); found {
		t.Error("expired entry still readable")
	}
}
