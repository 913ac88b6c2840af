package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smarttodo/smarttodo/internal/types"
)

// MemoryStore is the append-only log of daily reflections. Unlike the task
// store it re-reads the file on every operation: appends are rare and the
// file doubles as long-term memory a user may edit between sessions.
type MemoryStore struct {
	path string
}

// NewMemoryStore returns a store backed by the JSON file at path. The file
// is created lazily on first append.
func NewMemoryStore(path string) *MemoryStore {
	return &MemoryStore{path: path}
}

// Append loads existing entries, appends entry, and rewrites the file.
func (s *MemoryStore) Append(entry types.ReflectionEntry) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memory entries: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory file %s: %w", s.path, err)
	}
	return nil
}

// List returns all reflection entries in append order. A missing or empty
// file is an empty collection.
func (s *MemoryStore) List() ([]types.ReflectionEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read memory file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []types.ReflectionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse memory file %s: %w", s.path, err)
	}
	return entries, nil
}
