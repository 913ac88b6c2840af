package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/smarttodo/smarttodo/internal/types"
)

// taskFile is the on-disk shape of the task store. Keeping tasks under a
// top-level key leaves room for file-level metadata without a migration.
type taskFile struct {
	Tasks []types.Task `json:"tasks"`
}

// TaskStore owns the durable task list. All tasks live in memory; the
// backing file is rewritten after every mutation.
type TaskStore struct {
	path  string
	tasks []types.Task
}

// NewTaskStore loads the store from path. A missing or empty file is an
// empty collection, not an error; an unreadable or corrupt file is a
// storage error so the user can inspect it rather than have it silently
// overwritten.
func NewTaskStore(path string) (*TaskStore, error) {
	s := &TaskStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read task file %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}

	var f taskFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}
	s.tasks = f.Tasks
	return s, nil
}

// Add creates a new pending task, appends it, and persists the collection.
// IDs are UUIDs generated at creation and never reused, so they stay stable
// across process restarts.
func (s *TaskStore) Add(text string, opts AddOptions) (types.Task, error) {
	task := types.Task{
		ID:        uuid.New().String(),
		Text:      text,
		Status:    types.StatusPending,
		Priority:  opts.Priority,
		Due:       opts.Due,
		Category:  opts.Category,
		CreatedAt: time.Now().UTC(),
	}
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	if task.Due == "" {
		task.Due = "unspecified"
	}
	if task.Category == "" {
		task.Category = types.CategoryOther
	}
	if err := task.Validate(); err != nil {
		return types.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		// Roll back the in-memory append so memory and disk stay in sync
		s.tasks = s.tasks[:len(s.tasks)-1]
		return types.Task{}, err
	}
	return task, nil
}

// List returns all tasks in insertion order. The returned slice is a copy;
// callers cannot mutate store state through it.
func (s *TaskStore) List() []types.Task {
	out := make([]types.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ListByStatus returns tasks with the given status, in insertion order.
func (s *TaskStore) ListByStatus(status types.Status) []types.Task {
	var out []types.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// UpdateStatus changes a single task's status and persists. Returns
// ErrNotFound if the id does not exist; no state changes in that case.
func (s *TaskStore) UpdateStatus(id string, status types.Status) (types.Task, error) {
	if !status.IsValid() {
		return types.Task{}, fmt.Errorf("invalid status: %s", status)
	}

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		prev := s.tasks[i].Status
		s.tasks[i].Status = status
		if err := s.save(); err != nil {
			s.tasks[i].Status = prev
			return types.Task{}, err
		}
		return s.tasks[i], nil
	}
	return types.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// save rewrites the whole task file. The file is human-readable and safe to
// hand-edit between runs.
func (s *TaskStore) save() error {
	f := taskFile{Tasks: s.tasks}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write task file %s: %w", s.path, err)
	}
	return nil
}
