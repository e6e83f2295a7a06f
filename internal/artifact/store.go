// Package artifact holds the generated trajectory collection for serve mode
// and keeps it fresh with a background refresh loop.
package artifact

import (
	"sync/atomic"
	"time"
)

// Snapshot is one generated trajectory collection, serialized once so HTTP
// handlers can write it without re-encoding.
type Snapshot struct {
	JSON        []byte
	GeneratedAt time.Time
	Features    int
	Skipped     []string
}

// Store provides thread-safe access to the latest snapshot.
type Store struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewStore creates a new empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the latest snapshot, or nil if none has been generated yet.
func (s *Store) Get() *Snapshot {
	return s.snapshot.Load()
}

// Set atomically replaces the latest snapshot.
func (s *Store) Set(snap *Snapshot) {
	s.snapshot.Store(snap)
}
