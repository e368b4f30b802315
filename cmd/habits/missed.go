// ABOUTME: CLI command for showing the days a habit was missed.
// ABOUTME: Days run from the habit's start through today.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var missedCmd = &cobra.Command{
	Use:   "missed <name>",
	Short: "Show days a habit was missed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		missed, err := habitsApp.Habits.MissedDays(args[0])
		if err != nil {
			return err
		}

		if len(missed) == 0 {
			color.Green("✓ No missed days")
			return nil
		}

		color.Yellow("%d missed days", len(missed))
		for _, d := range missed {
			fmt.Printf("  %s\n", d)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missedCmd)
}
