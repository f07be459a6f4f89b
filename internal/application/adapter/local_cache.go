package adapter

import (
	"context"
	"time"
)

// LocalCache is the key/value collaborator that mirrors session state for fast
// reloads. Values are stored as JSON.
type LocalCache interface {
	// Get decodes the value stored under key into dest. It reports whether the key was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
