package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/CauaPrates/organiza-ai-app/internal/application/adapter"
)

var cacheBucketName = []byte("cache")

// envelope wraps a cached value with its expiry. A zero ExpiresAt never expires.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at,omitempty"`
}

func (e envelope) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// boltCache implements the adapter.LocalCache interface on a single bolt bucket.
type boltCache struct {
	db  *bolt.DB
	now func() time.Time
}

// NewBoltCache creates the cache bucket if needed.
func NewBoltCache(db *bolt.DB) (adapter.LocalCache, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cacheBucketName)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &boltCache{db: db, now: time.Now}, nil
}

// Get decodes the value stored under key into dest. Expired entries are reported as missing.
func (c *boltCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	var entry envelope
	found := false

	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(cacheBucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &entry)
	})
	if err != nil {
		return false, fmt.Errorf("read cached %s: %w", key, err)
	}

	if !found {
		return false, nil
	}
	if entry.expired(c.now()) {
		// Lazy eviction; a failure only leaves a stale row behind.
		_ = c.Delete(ctx, key)
		return false, nil
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key. A zero ttl keeps the entry until deleted.
func (c *boltCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}

	entry := envelope{Value: raw}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		encoded, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return tx.Bucket(cacheBucketName).Put([]byte(key), encoded)
	})
}

// Delete removes the given keys.
func (c *boltCache) Delete(ctx context.Context, keys ...string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(cacheBucketName)
		for _, k := range keys {
			if err := bucket.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}
