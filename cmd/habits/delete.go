// ABOUTME: CLI command for deleting habits.
// ABOUTME: Also removes the habit's todos after confirmation.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a habit",
	Long: `Delete a habit by its exact name, together with its missed-day
history and its habit todos.

CAUTION:

  This permanently deletes the habit. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, err := habitsApp.Habits.Get(name); err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Delete habit %q?", name)) {
			fmt.Println("Canceled.")
			return nil
		}

		deleted, removed := habitsApp.DeleteHabit(name)
		if !deleted {
			return fmt.Errorf("delete habit %q: %w", name, models.ErrNotFound)
		}

		color.Yellow("✗ Deleted %s", name)
		if removed > 0 {
			fmt.Printf("  %s\n", faint.Sprintf("%d todos removed", removed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
