package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/storage"
	"github.com/smarttodo/smarttodo/internal/types"
)

// Planner classifies pending tasks into the three daily-plan tiers. It is
// read-only with respect to the task store.
type Planner struct {
	client ai.Client
	store  storage.TaskStorage
}

// NewPlanner creates a planner agent over the given model client and store.
func NewPlanner(client ai.Client, store storage.TaskStorage) *Planner {
	return &Planner{client: client, store: store}
}

// planResponse is the shape the classification prompt asks the model for:
// task ids per tier. Mapping ids back to tasks locally keeps task content
// authoritative in the store; the model only decides placement.
type planResponse struct {
	MustDoToday []string `json:"must_do_today"`
	GoodToDo    []string `json:"good_to_do"`
	CanDoLater  []string `json:"can_do_later"`
}

// Plan builds today's tiered plan from pending tasks. An empty pending set
// returns an empty plan without calling the model. Tier assignment is taken
// from the model as-is; ids the model invents are dropped, and no local
// re-sorting is applied.
func (a *Planner) Plan(ctx context.Context) (types.DailyPlan, error) {
	pending := a.store.ListByStatus(types.StatusPending)
	if len(pending) == 0 {
		return types.DailyPlan{}, nil
	}

	prompt, err := buildPlanPrompt(pending)
	if err != nil {
		return types.DailyPlan{}, err
	}

	raw, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return types.DailyPlan{}, serviceError("planner", err)
	}

	resp, err := ai.ParseResponse[planResponse]("planner", raw)
	if err != nil {
		return types.DailyPlan{}, err
	}

	byID := make(map[string]types.Task, len(pending))
	for _, t := range pending {
		byID[t.ID] = t
	}

	plan := types.DailyPlan{
		MustDoToday: resolveTasks(byID, resp.MustDoToday),
		GoodToDo:    resolveTasks(byID, resp.GoodToDo),
		CanDoLater:  resolveTasks(byID, resp.CanDoLater),
	}

	slog.Info("plan generated",
		"pending", len(pending),
		"must_do_today", len(plan.MustDoToday),
		"good_to_do", len(plan.GoodToDo),
		"can_do_later", len(plan.CanDoLater))

	return plan, nil
}

func resolveTasks(byID map[string]types.Task, ids []string) []types.Task {
	var out []types.Task
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			out = append(out, task)
		}
	}
	return out
}

func buildPlanPrompt(pending []types.Task) (string, error) {
	taskJSON, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks for planning: %w", err)
	}

	return fmt.Sprintf(`You are a friendly planning assistant.

TODAY'S DATE: %s

These are the user's pending tasks (JSON):
%s

Classify every task into exactly one of three tiers and return ONLY valid
JSON in this format, using the task "id" values:
{
  "must_do_today": ["id", ...],
  "good_to_do": ["id", ...],
  "can_do_later": ["id", ...]
}

Guidelines:
- Consider priority (high first), then due date.
- Every task id must appear in exactly one tier.
- Do NOT include any extra text, only JSON.`,
		time.Now().Format("2006-01-02"), taskJSON), nil
}
