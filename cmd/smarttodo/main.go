// Command smarttodo is a single-user productivity assistant: it turns
// natural-language text into tasks, plans the day, and keeps end-of-day
// reflections, all through an interactive shell.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smarttodo/smarttodo/internal/agent"
	"github.com/smarttodo/smarttodo/internal/ai"
	"github.com/smarttodo/smarttodo/internal/config"
	"github.com/smarttodo/smarttodo/internal/shell"
	"github.com/smarttodo/smarttodo/internal/storage"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:   "smarttodo",
	Short: "Personal to-do assistant with AI intake, planning, and reflection",
	Long: `SmartToDo is a single-user command-line productivity assistant.

It extracts discrete tasks from free-form text with a language model,
keeps them in a flat JSON file, builds a tiered daily plan, and writes an
end-of-day reflection into long-term memory.

Running with no subcommand starts the interactive shell.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		// A missing credential is fatal before any menu is shown
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		tasks, memory := mustOpenStores(cfg)
		client := ai.NewAnthropicClient(cfg.APIKey, cfg.Model)

		sh, err := shell.New(&shell.Config{
			Tasks:       tasks,
			Intake:      agent.NewIntake(client, tasks),
			Planner:     agent.NewPlanner(client, tasks),
			Reflection:  agent.NewReflection(client, tasks, memory, nil),
			HistoryFile: filepath.Join(cfg.DataDir, "history"),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create shell: %v\n", err)
			os.Exit(1)
		}

		if err := sh.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// mustLoadConfig loads configuration, applies the --data-dir flag, and sets
// up logging. Exits with a one-line diagnostic on failure.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	setupLogging(cfg.LogLevel)
	return cfg
}

// mustOpenStores opens both stores or exits.
func mustOpenStores(cfg *config.Config) (*storage.TaskStore, *storage.MemoryStore) {
	tasks, err := storage.NewTaskStore(cfg.TaskPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return tasks, storage.NewMemoryStore(cfg.MemoryPath())
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for task, memory, and history files (default ~/.smarttodo)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
