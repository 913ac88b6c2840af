// Package types defines the core data model shared by the stores, agents,
// and the interactive shell.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Task represents one actionable item extracted from user text.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	Priority  Priority  `json:"priority"`
	Due       string    `json:"due"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the task has valid field values
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(t.Text) > 500 {
		return fmt.Errorf("text must be 500 characters or less (got %d)", len(t.Text))
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", t.Category)
	}
	return nil
}

// Status represents the current state of a task
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusDone:
		return true
	}
	return false
}

// Priority represents how urgent a task is, as judged by the intake model.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NormalizePriority maps arbitrary model output onto a valid priority,
// falling back to medium.
func NormalizePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return PriorityMedium
}

// Category is a coarse life-area bucket for a task.
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// IsValid checks if the category value is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryStudy, CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// NormalizeCategory maps arbitrary model output onto a valid category,
// falling back to other.
func NormalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// ReflectionEntry is one day's summary, kept in the long-term memory file.
// Entries are append-only; calling reflect twice on the same date appends a
// second entry rather than replacing the first.
type ReflectionEntry struct {
	Date           string `json:"date"`
	Summary        string `json:"summary"`
	CompletedCount int    `json:"completed_count"`
	PendingCount   int    `json:"pending_count"`
}

// DailyPlan groups pending tasks into three urgency tiers. Tier assignment
// comes entirely from the planner model; no local re-sorting is applied.
type DailyPlan struct {
	MustDoToday []Task `json:"must_do_today"`
	GoodToDo    []Task `json:"good_to_do"`
	CanDoLater  []Task `json:"can_do_later"`
}

// IsEmpty reports whether the plan contains no tasks in any tier.
func (p *DailyPlan) IsEmpty() bool {
	return len(p.MustDoToday) == 0 && len(p.GoodToDo) == 0 && len(p.CanDoLater) == 0
}

// TotalTasks returns the number of tasks across all tiers.
func (p *DailyPlan) TotalTasks() int {
	return len(p.MustDoToday) + len(p.GoodToDo) + len(p.CanDoLater)
}
