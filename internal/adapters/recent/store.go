// Package recent remembers recently used observation logs in a flat JSON file.
package recent

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/obslog/internal/core/ports"
	"go.trai.ch/zerr"
)

// FileName is the name of the state file inside the state directory.
const FileName = "recent.json"

var _ ports.RecentStore = (*Store)(nil)

// Store implements ports.RecentStore using a flat JSON file.
type Store struct {
	path  string
	limit int
	mu    sync.RWMutex
	paths []string
}

// NewStore creates a store backed by the file at path that keeps at most
// limit entries. A limit of zero disables remembering.
func NewStore(path string, limit int) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		limit: limit,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read recent documents"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.paths); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal recent documents"), "path", s.path)
	}
	s.paths = s.truncate(s.paths)

	return nil
}

func (s *Store) save(paths []string) error {
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal recent documents")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create state directory")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write recent documents"), "path", s.path)
	}

	return nil
}

func (s *Store) truncate(paths []string) []string {
	if len(paths) > s.limit {
		return paths[:s.limit]
	}
	return paths
}

// Touch moves path to the front of the list, dropping the oldest entries
// beyond the limit.
func (s *Store) Touch(path string) error {
	if s.limit <= 0 || path == "" {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	paths := slices.DeleteFunc(slices.Clone(s.paths), func(p string) bool { return p == path })
	paths = s.truncate(append([]string{path}, paths...))
	if err := s.save(paths); err != nil {
		return err
	}
	s.paths = paths
	return nil
}

// List returns the remembered documents, most recent first.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.paths), nil
}
