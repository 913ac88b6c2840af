// Package agent implements the three LLM-backed agents: intake, planner,
// and reflection. Each agent issues one blocking model call per invocation
// and owns its fixed instruction prompt.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/storage"
	"github.com/smarttodo/smarttodo/internal/types"
)

// Intake turns messy natural-language input into structured pending tasks.
type Intake struct {
	client ai.Client
	store  storage.TaskStorage
}

// NewIntake creates an intake agent over the given model client and store.
func NewIntake(client ai.Client, store storage.TaskStorage) *Intake {
	return &Intake{client: client, store: store}
}

// extractedTask is the shape the extraction prompt asks the model for.
type extractedTask struct {
	Text     string `json:"text"`
	Due      string `json:"due"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

// Extract sends rawText to the model, parses the returned task list, and
// adds each item to the task store as pending. An empty list is a valid
// outcome, not an error: the input simply contained no actionable items.
//
// Nothing is committed when the response cannot be parsed. If a store write
// fails partway through a parsed list, tasks already added stay added; the
// model call is the all-or-nothing boundary, not the store loop.
func (a *Intake) Extract(ctx context.Context, rawText string) ([]types.Task, error) {
	prompt := buildExtractionPrompt(rawText)

	raw, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, serviceError("intake", err)
	}

	items, err := ai.ParseResponse[[]extractedTask]("intake", raw)
	if err != nil {
		return nil, err
	}

	var created []types.Task
	for _, item := range items {
		text := item.Text
		if text == "" {
			text = "Untitled task"
		}
		task, err := a.store.Add(text, storage.AddOptions{
			Priority: types.NormalizePriority(item.Priority),
			Due:      item.Due,
			Category: types.NormalizeCategory(item.Category),
		})
		if err != nil {
			return created, fmt.Errorf("failed to store extracted task: %w", err)
		}
		created = append(created, task)
	}

	slog.Info("tasks extracted", "count", len(created))
	return created, nil
}

func buildExtractionPrompt(rawText string) string {
	return fmt.Sprintf(`You are a task extraction agent for a personal to-do app.

USER MESSAGE:
"""%s"""

Extract the tasks and return ONLY a valid JSON array in this format:
[
  {
    "text": "...",
    "due": "today | tomorrow | this week | a specific date | unspecified",
    "priority": "high | medium | low",
    "category": "study | work | personal | health | other"
  }
]

Rules:
- If no due date is mentioned, use "unspecified".
- If the message is not about tasks, return an empty array [].
- Do NOT include any extra text, only JSON.`, rawText)
}

// serviceError surfaces a failed external call as ServiceUnavailable,
// avoiding double-wrapping when the client already classified it.
func serviceError(op string, err error) error {
	var unavailable *ai.ServiceUnavailableError
	if errors.As(err, &unavailable) {
		return err
	}
	return &ai.ServiceUnavailableError{Op: op, Err: err}
}
