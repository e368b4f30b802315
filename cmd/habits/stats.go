// ABOUTME: CLI commands for statistics and reminders.
// ABOUTME: Shows the completion rate and habits still due today.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sum := habitsApp.Habits.Summary()

		fmt.Printf("Completion rate  %s %d%%\n", progressBar(sum.CompletionRate, 20), sum.CompletionRate)
		fmt.Printf("Habits           %d\n", sum.Total)
		fmt.Printf("  Active         %d\n", sum.Active)
		fmt.Printf("  Completed      %d\n", sum.Completed)
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "List habits not yet done today",
	RunE: func(cmd *cobra.Command, args []string) error {
		due := habitsApp.Habits.Reminders()
		if len(due) == 0 {
			color.Green("✓ All habits done for today")
			return nil
		}

		color.Yellow("%d habits still to do today", len(due))
		for _, h := range due {
			printHabit(h, false)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(remindCmd)
}
