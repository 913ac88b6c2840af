// Package shell implements the interactive menu loop. Every lower-layer
// error stops here and is rendered as a single line; the loop itself never
// exits on a recoverable error.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/smarttodo/smarttodo/internal/agent"
	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/storage"
	"github.com/smarttodo/smarttodo/internal/types"
)

// Shell is the interactive menu over the task store and agents. The
// reflection agent owns the memory store; the shell never touches it
// directly.
type Shell struct {
	tasks      storage.TaskStorage
	intake     *agent.Intake
	planner    *agent.Planner
	reflection *agent.Reflection
	rl         *readline.Instance
	ctx        context.Context
}

// Config holds shell construction parameters.
type Config struct {
	Tasks       storage.TaskStorage
	Intake      *agent.Intake
	Planner     *agent.Planner
	Reflection  *agent.Reflection
	HistoryFile string
}

// New creates a shell. All collaborators are required.
func New(cfg *Config) (*Shell, error) {
	if cfg.Tasks == nil {
		return nil, fmt.Errorf("task store is required")
	}
	if cfg.Intake == nil || cfg.Planner == nil || cfg.Reflection == nil {
		return nil, fmt.Errorf("agents are required")
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("smarttodo> "),
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		tasks:      cfg.Tasks,
		intake:     cfg.Intake,
		planner:    cfg.Planner,
		reflection: cfg.Reflection,
		rl:         rl,
	}, nil
}

// Run starts the menu loop and blocks until exit.
func (s *Shell) Run(ctx context.Context) error {
	s.ctx = ctx
	defer s.rl.Close()

	s.printWelcome()

	for {
		s.printMenu()
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.dispatch(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %s\n", red("Error:"), renderError(err))
		}
	}
}

// dispatch maps a menu choice to its handler. Numbers and words are both
// accepted.
func (s *Shell) dispatch(choice string) error {
	switch strings.ToLower(choice) {
	case "1", "add":
		return s.cmdAdd()
	case "2", "list":
		return s.cmdList()
	case "3", "done":
		return s.cmdDone()
	case "4", "plan":
		return s.cmdPlan()
	case "5", "reflect":
		return s.cmdReflect()
	case "6", "exit", "quit":
		return s.cmdExit()
	case "help", "?":
		s.printMenu()
		return nil
	default:
		return fmt.Errorf("unknown choice %q, type a number from 1 to 6", choice)
	}
}

func (s *Shell) cmdAdd() error {
	text, err := s.promptLine("Type your tasks in natural language:\n> ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text must not be empty")
	}

	created, err := s.intake.Extract(s.ctx, text)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Println("No actionable tasks found in that message.")
		return nil
	}

	fmt.Println("\nCreated tasks:")
	printTasks(created)
	return nil
}

func (s *Shell) cmdList() error {
	fmt.Println("\nAll tasks:")
	printTasks(s.tasks.List())
	return nil
}

func (s *Shell) cmdDone() error {
	input, err := s.promptLine("Enter task ID (or unique prefix) to mark as done: ")
	if err != nil {
		return err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("task ID must not be empty")
	}

	id, err := s.resolveTaskID(input)
	if err != nil {
		return err
	}

	updated, err := s.tasks.UpdateStatus(id, types.StatusDone)
	if err != nil {
		return err
	}

	fmt.Println("Updated task:")
	printTasks([]types.Task{updated})
	return nil
}

func (s *Shell) cmdPlan() error {
	plan, err := s.planner.Plan(s.ctx)
	if err != nil {
		return err
	}
	if plan.IsEmpty() {
		fmt.Println("No pending tasks to plan.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", bold("===== PLAN FOR TODAY ====="))
	printTier("Must do today", plan.MustDoToday, color.FgRed)
	printTier("Good to do", plan.GoodToDo, color.FgYellow)
	printTier("Can do later", plan.CanDoLater, color.FgGreen)
	return nil
}

func (s *Shell) cmdReflect() error {
	entry, err := s.reflection.Reflect(s.ctx)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", bold("===== DAILY REFLECTION ====="))
	fmt.Println(entry.Summary)
	fmt.Printf("\n(%d completed, %d pending)\n", entry.CompletedCount, entry.PendingCount)
	return nil
}

func (s *Shell) cmdExit() error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s Goodbye!\n", green("✓"))
	return io.EOF
}

// promptLine reads one line with a temporary prompt, restoring the main
// prompt afterwards.
func (s *Shell) promptLine(prompt string) (string, error) {
	cyan := color.New(color.FgCyan).SprintFunc()
	s.rl.SetPrompt(prompt)
	defer s.rl.SetPrompt(cyan("smarttodo> "))

	line, err := s.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", fmt.Errorf("cancelled")
		}
		return "", err
	}
	return line, nil
}

// resolveTaskID accepts a full task id or a unique prefix. Ambiguous and
// unknown prefixes are rejected before any store mutation.
func (s *Shell) resolveTaskID(input string) (string, error) {
	var match string
	for _, task := range s.tasks.List() {
		if task.ID == input {
			return task.ID, nil
		}
		if strings.HasPrefix(task.ID, input) {
			if match != "" {
				return "", fmt.Errorf("task ID prefix %q is ambiguous", input)
			}
			match = task.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", storage.ErrNotFound, input)
	}
	return match, nil
}

func (s *Shell) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("SmartToDo - Personal To-Do Agent"))
	fmt.Println("Natural-language tasks, daily plans, and end-of-day reflections")
}

func (s *Shell) printMenu() {
	fmt.Println()
	fmt.Println("1) Add tasks from text")
	fmt.Println("2) Show all tasks")
	fmt.Println("3) Mark task as done")
	fmt.Println("4) Generate today's plan")
	fmt.Println("5) Generate reflection")
	fmt.Println("6) Exit")
}

func printTier(title string, tasks []types.Task, c color.Attribute) {
	if len(tasks) == 0 {
		return
	}
	heading := color.New(c, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", heading(title+":"))
	printTasks(tasks)
}

func printTasks(tasks []types.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	for _, t := range tasks {
		status := string(t.Status)
		if t.Status == types.StatusDone {
			status = color.GreenString(status)
		}
		fmt.Printf("[%s] (%s) [prio: %s, due: %s, cat: %s] - %s\n",
			shortID(t.ID), status, t.Priority, t.Due, t.Category, t.Text)
	}
}

// shortID shows the first 8 characters of a UUID; full ids are accepted on
// input but too noisy for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// renderError turns a lower-layer error into the single line shown to the
// user.
func renderError(err error) string {
	var unavailable *ai.ServiceUnavailableError
	if errors.As(err, &unavailable) {
		return fmt.Sprintf("the AI service is unavailable (%v); try again in a moment", unavailable.Err)
	}

	var malformed *ai.MalformedResponseError
	if errors.As(err, &malformed) {
		return "the AI response could not be understood; try again"
	}

	if errors.Is(err, storage.ErrNotFound) {
		return err.Error()
	}

	return err.Error()
}
