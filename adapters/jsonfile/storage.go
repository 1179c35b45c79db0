package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"glidescore/core"
)

// Store persists the entire score collection to a single JSON file.
// Every write replaces the full collection; reads of a missing or
// unparseable file are treated as an empty collection.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the persisted collection. A missing file and corrupt JSON both
// read as "no scores yet"; only genuine I/O faults return an error.
func (s *Store) Load(_ context.Context) ([]core.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []core.ScoreEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		s.logger.Warn("discarding unreadable scores file", "path", s.path, "error", err)
		return nil, nil
	}
	return entries, nil
}

// Replace atomically rewrites the stored collection.
func (s *Store) Replace(_ context.Context, entries []core.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []core.ScoreEntry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Probe verifies the storage location is writable with a write-then-delete
// of a sentinel file next to the data.
func (s *Store) Probe(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
