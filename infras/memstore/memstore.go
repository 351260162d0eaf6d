package memstore

import (
	"context"
	"sync"
)

// Store is the shared in-memory storage engine behind the domain
// repositories. A single store-wide RWMutex guards every collection, so a
// write transaction observes and mutates rooms and bookings as one
// consistent unit. That is what makes an availability check followed by a
// booking insert race-free without a database.
type Store struct {
	mu sync.RWMutex
}

// Tx is a capability token proving that the holder runs inside View or
// Update. Repository methods that require the store lock take a *Tx so they
// cannot be called unguarded.
type Tx struct {
	write bool
}

// Writable reports whether the transaction may mutate collections.
func (tx *Tx) Writable() bool {
	return tx.write
}

func New() *Store {
	return &Store{}
}

// View runs fn under the store read lock. Multiple views proceed
// concurrently; none observes a partially applied update.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&Tx{})
}

// Update runs fn under the store write lock. If fn returns an error the
// caller is expected to have left the collections untouched; the store has
// no rollback of its own.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&Tx{write: true})
}
