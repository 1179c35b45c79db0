package memory

import (
	"context"
	"sync"

	"glidescore/core"
)

// Store keeps the score collection in memory. Used for tests and local
// development; semantics match the jsonfile adapter minus the disk.
type Store struct {
	mu      sync.Mutex
	entries []core.ScoreEntry
}

func New() *Store { return &Store{} }

func (s *Store) Load(_ context.Context) ([]core.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ScoreEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Store) Replace(_ context.Context, entries []core.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]core.ScoreEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

func (s *Store) Probe(_ context.Context) error { return nil }
