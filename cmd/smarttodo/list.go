package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smarttodo/smarttodo/internal/types"
)

var listStatusFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print tasks without starting the shell",
	Long: `Print the stored tasks one per line and exit.

Useful for scripting or a quick glance; no API key is required since no
model call is made.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		tasks, _ := mustOpenStores(cfg)

		var list []types.Task
		if listStatusFlag == "" {
			list = tasks.List()
		} else {
			status := types.Status(listStatusFlag)
			if !status.IsValid() {
				fmt.Fprintf(os.Stderr, "Error: invalid status %q (want pending or done)\n", listStatusFlag)
				os.Exit(1)
			}
			list = tasks.ListByStatus(status)
		}

		if len(list) == 0 {
			fmt.Println("No tasks.")
			return
		}
		for _, t := range list {
			status := string(t.Status)
			if t.Status == types.StatusDone {
				status = color.GreenString(status)
			}
			fmt.Printf("[%.8s] (%s) [prio: %s, due: %s, cat: %s] - %s\n",
				t.ID, status, t.Priority, t.Due, t.Category, t.Text)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatusFlag, "status", "", "filter by status (pending or done)")
	rootCmd.AddCommand(listCmd)
}
