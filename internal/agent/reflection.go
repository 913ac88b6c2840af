package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/storage"
	"github.com/smarttodo/smarttodo/internal/types"
)

// Reflection writes a short end-of-day summary into long-term memory.
type Reflection struct {
	client ai.Client
	store  storage.TaskStorage
	memory storage.MemoryStorage
	now    func() time.Time
}

// NewReflection creates a reflection agent. The clock is injectable for
// tests; a nil now uses time.Now.
func NewReflection(client ai.Client, store storage.TaskStorage, memory storage.MemoryStorage, now func() time.Time) *Reflection {
	if now == nil {
		now = time.Now
	}
	return &Reflection{client: client, store: store, memory: memory, now: now}
}

// Reflect summarizes the day and appends the result to the memory store.
// Counts are computed locally, not delegated to the model. A failed model
// call appends nothing: the memory store never sees partial reflections.
// Repeat calls on the same date append additional entries.
func (a *Reflection) Reflect(ctx context.Context) (types.ReflectionEntry, error) {
	completed := a.store.ListByStatus(types.StatusDone)
	pending := a.store.ListByStatus(types.StatusPending)
	today := a.now().Format("2006-01-02")

	prompt, err := buildReflectionPrompt(today, completed, pending)
	if err != nil {
		return types.ReflectionEntry{}, err
	}

	summary, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return types.ReflectionEntry{}, serviceError("reflection", err)
	}

	entry := types.ReflectionEntry{
		Date:           today,
		Summary:        strings.TrimSpace(summary),
		CompletedCount: len(completed),
		PendingCount:   len(pending),
	}
	if err := a.memory.Append(entry); err != nil {
		return types.ReflectionEntry{}, fmt.Errorf("failed to save reflection: %w", err)
	}

	slog.Info("reflection saved",
		"date", entry.Date,
		"completed", entry.CompletedCount,
		"pending", entry.PendingCount)

	return entry, nil
}

func buildReflectionPrompt(today string, completed, pending []types.Task) (string, error) {
	completedJSON, err := json.MarshalIndent(completed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode completed tasks: %w", err)
	}
	pendingJSON, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode pending tasks: %w", err)
	}

	return fmt.Sprintf(`You are a gentle reflection coach.

Today's date: %s

Completed tasks (%d):
%s

Pending tasks (%d):
%s

Write a short reflection (3-5 sentences) for the user:
- Say what they did well.
- Mention one thing to improve tomorrow.
- Give one small suggestion for tomorrow's focus.
Use very simple English. Respond with the reflection text only.`,
		today, len(completed), completedJSON, len(pending), pendingJSON), nil
}
