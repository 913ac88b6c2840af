package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print stored daily reflections",
	Long: `Print every reflection entry from long-term memory in append order.

Entries are grouped by date; a date can repeat if reflections were
generated more than once that day.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		_, memory := mustOpenStores(cfg)

		entries, err := memory.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Println("No reflections yet.")
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		for i, e := range entries {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%d completed, %d pending)\n", bold(e.Date), e.CompletedCount, e.PendingCount)
			fmt.Println(e.Summary)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
