package pending

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired entries.
var ErrNotFound = errors.New("pending entry not found")

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Registry holds live UI instances (open forms, decision controls) by an
// opaque ID until they are taken or their TTL passes. Nothing survives a restart.
type Registry[T any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry[T]
}

// NewRegistry creates a Registry whose entries live for ttl.
// A nil clock uses time.Now.
func NewRegistry[T any](ttl time.Duration, now func() time.Time) *Registry[T] {
	if now == nil {
		now = time.Now
	}
	return &Registry[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[T]),
	}
}

// Put stores value under a fresh ID and returns the ID.
func (r *Registry[T]) Put(value T) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = entry[T]{value: value, expiresAt: r.now().Add(r.ttl)}
	return id
}

// Get returns the live entry for id without removing it.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(id)
}

// Take removes and returns the live entry for id.
func (r *Registry[T]) Take(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.lookupLocked(id)
	if err != nil {
		return v, err
	}
	delete(r.entries, id)
	return v, nil
}

// Delete drops id if present.
func (r *Registry[T]) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry[T]) lookupLocked(id string) (T, error) {
	var zero T
	e, ok := r.entries[id]
	if !ok {
		return zero, ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Sweep removes expired entries and returns how many were dropped.
func (r *Registry[T]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var n int
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Run sweeps every interval until ctx is cancelled. onSweep, if set,
// receives the number of entries dropped by each non-empty sweep.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
