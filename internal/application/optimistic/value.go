// Package optimistic implements optimistic updates with rollback.
//
// A Value shows the new state as soon as an update starts. The state is
// persisted afterwards and restored to the exact previous value if the
// persistence step fails.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned when an update starts while another one on the same value is still running.
var ErrInFlight = errors.New("optimistic: update already in flight")

// PersistFunc stores the new value remotely.
type PersistFunc[T any] func(ctx context.Context, next T) error

// Value holds a displayed value that can be updated optimistically.
type Value[T any] struct {
	mu        sync.Mutex
	current   T
	inFlight  bool
	observers []func(T)
}

// New returns a Value showing initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the displayed value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// InFlight reports whether an update is waiting for its persistence step.
func (v *Value[T]) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight
}

// OnChange registers fn to be called with every value applied or restored.
// Observers run outside the lock, in registration order.
func (v *Value[T]) OnChange(fn func(T)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, fn)
}

// Set replaces the displayed value without persisting it, e.g. after a fresh read
// from the remote store. It is ignored while an update is in flight.
func (v *Value[T]) Set(next T) bool {
	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return false
	}
	v.current = next
	observers := v.snapshotObservers()
	v.mu.Unlock()

	notify(observers, next)
	return true
}

// Update shows next immediately and then persists it. When persist fails the
// previous value is restored and the error is returned wrapped.
func (v *Value[T]) Update(ctx context.Context, next T, persist PersistFunc[T]) error {
	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return ErrInFlight
	}
	previous := v.current
	v.current = next
	v.inFlight = true
	observers := v.snapshotObservers()
	v.mu.Unlock()

	notify(observers, next)

	err := persist(ctx, next)

	v.mu.Lock()
	v.inFlight = false
	if err != nil {
		v.current = previous
	}
	v.mu.Unlock()

	if err != nil {
		notify(observers, previous)
		return fmt.Errorf("optimistic update rolled back: %w", err)
	}
	return nil
}

func (v *Value[T]) snapshotObservers() []func(T) {
	if len(v.observers) == 0 {
		return nil
	}
	out := make([]func(T), len(v.observers))
	copy(out, v.observers)
	return out
}

func notify[T any](observers []func(T), value T) {
	for _, fn := range observers {
		fn(value)
	}
}
