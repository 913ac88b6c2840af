package agent

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smarttodo/smarttodo/internal/storage"
)

// stubClient is a deterministic ai.Client for agent tests.
type stubClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (c *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func newTestTaskStore(t *testing.T) *storage.TaskStore {
	t.Helper()
	store, err := storage.NewTaskStore(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, err)
	return store
}

func newTestMemoryStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	return storage.NewMemoryStore(filepath.Join(t.TempDir(), "memory.json"))
}
