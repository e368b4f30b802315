// ABOUTME: CLI command for marking a habit done today.
// ABOUTME: Repeating it on the same day changes nothing.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <name>",
	Aliases: []string{"complete", "check"},
	Short:   "Mark a habit done for today",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := habitsApp.Habits.CompleteToday(args[0])
		if err != nil {
			return err
		}

		if h.IsFinished() {
			color.Green("✓ %s complete! All %d days done.", h.Name, h.NumberOfDays)
			return nil
		}
		color.Green("✓ %s done for today", h.Name)
		fmt.Printf("  %s\n", faint.Sprintf("%d days remaining", h.RemainingDays))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
