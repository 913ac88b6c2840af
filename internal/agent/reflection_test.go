package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/storage"
	"github.com/smarttodo/smarttodo/internal/types"
)

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return func() time.Time { return parsed }
}

func TestReflectCountsAndEntry(t *testing.T) {
	store := newTestTaskStore(t)
	memory := newTestMemoryStore(t)

	var ids []string
	for _, text := range []string{"Buy milk", "Call mom", "Finish report"} {
		task, err := store.Add(text, storage.AddOptions{})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	_, err := store.UpdateStatus(ids[0], types.StatusDone)
	require.NoError(t, err)

	client := &stubClient{response: "  You finished your shopping. Try calling mom first tomorrow.  "}
	agent := NewReflection(client, store, memory, fixedClock(t, "2026-08-30"))

	entry, err := agent.Reflect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-08-30", entry.Date)
	assert.Equal(t, 1, entry.CompletedCount)
	assert.Equal(t, 2, entry.PendingCount)
	assert.Equal(t, "You finished your shopping. Try calling mom first tomorrow.", entry.Summary)

	saved, err := memory.List()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, entry, saved[0])

	// Counts are computed locally but both task groups reach the model
	require.Equal(t, 1, client.calls)
	assert.True(t, strings.Contains(client.prompts[0], "Buy milk"))
	assert.True(t, strings.Contains(client.prompts[0], "Finish report"))
}

func TestReflectFailedCallAppendsNothing(t *testing.T) {
	store := newTestTaskStore(t)
	memory := newTestMemoryStore(t)

	_, err := store.Add("Buy milk", storage.AddOptions{})
	require.NoError(t, err)

	before, err := memory.List()
	require.NoError(t, err)

	client := &stubClient{err: errors.New("auth failure")}
	agent := NewReflection(client, store, memory, nil)

	_, err = agent.Reflect(context.Background())
	require.Error(t, err)

	var unavailable *ai.ServiceUnavailableError
	require.ErrorAs(t, err, &unavailable)

	after, err := memory.List()
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after), "failed reflect must not change entry count")
}

func TestReflectSameDateAppendsAgain(t *testing.T) {
	store := newTestTaskStore(t)
	memory := newTestMemoryStore(t)

	client := &stubClient{response: "A quiet day."}
	agent := NewReflection(client, store, memory, fixedClock(t, "2026-08-30"))

	_, err := agent.Reflect(context.Background())
	require.NoError(t, err)
	client.response = "Still quiet."
	_, err = agent.Reflect(context.Background())
	require.NoError(t, err)

	saved, err := memory.List()
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, saved[0].Date, saved[1].Date)
	assert.Equal(t, "Still quiet.", saved[1].Summary)
}

func TestReflectWithNoTasks(t *testing.T) {
	store := newTestTaskStore(t)
	memory := newTestMemoryStore(t)

	client := &stubClient{response: "Nothing tracked today. Add some tasks tomorrow."}
	agent := NewReflection(client, store, memory, fixedClock(t, "2026-08-30"))

	entry, err := agent.Reflect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, entry.CompletedCount)
	assert.Equal(t, 0, entry.PendingCount)
}
