// ABOUTME: CLI command for creating habits.
// ABOUTME: Takes a name, description, and target number of days.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <name> <description> <days>",
	Aliases: []string{"a", "new"},
	Short:   "Create a habit",
	Long: `Create a habit to track for a number of days.

Names are unique ignoring case and surrounding spaces. The habit starts
today and counts down one day for each day you mark it done.

Examples:
  habits add Run "5k around the park" 30
  habits add "Read" "20 pages before bed" 21`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid number of days: %s", args[2])
		}

		h, err := habitsApp.Habits.Create(args[0], args[1], n)
		if err != nil {
			return err
		}

		color.Green("✓ Added %s", h.Name)
		fmt.Printf("  %s %s\n", faint.Sprintf("%d days", h.NumberOfDays), h.Description)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
