// ABOUTME: CLI command for listing habits with progress.
// ABOUTME: Supports searching by name or description.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listSearch string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List habits",
	Long: `List habits with a progress bar and days remaining.

A ✓ marks habits already done today.

EXAMPLES:

  habits list                 # Every habit
  habits list --search run    # Habits whose name or description mentions "run"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		found := habitsApp.Habits.Search(listSearch)
		if len(found) == 0 {
			fmt.Println("No habits found.")
			return nil
		}

		for _, h := range found {
			printHabit(h, habitsApp.Habits.CompletedToday(h))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "filter by name or description")
	rootCmd.AddCommand(listCmd)
}
