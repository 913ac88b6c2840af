// Package storage provides the durable JSON-file stores for tasks and
// reflection memory. Each store reads its whole file into memory at
// construction and rewrites the whole file after every mutation. The owning
// process is the sole mutator for the lifetime of a run; no locking is
// provided or needed.
package storage

import (
	"errors"

	"github.com/smarttodo/smarttodo/internal/types"
)

// ErrNotFound is returned when a referenced task id does not exist.
var ErrNotFound = errors.New("task not found")

// AddOptions carries the model-extracted metadata for a new task. Zero
// values are normalized to medium priority, "unspecified" due, and the
// other category.
type AddOptions struct {
	Priority types.Priority
	Due      string
	Category types.Category
}

// TaskStorage is the store interface the agents and shell depend on.
// Implemented by TaskStore; tests may substitute their own.
type TaskStorage interface {
	Add(text string, opts AddOptions) (types.Task, error)
	List() []types.Task
	ListByStatus(status types.Status) []types.Task
	UpdateStatus(id string, status types.Status) (types.Task, error)
}

// MemoryStorage is the append-only reflection log interface.
type MemoryStorage interface {
	Append(entry types.ReflectionEntry) error
	List() ([]types.ReflectionEntry, error)
}
