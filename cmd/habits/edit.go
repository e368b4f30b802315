// ABOUTME: CLI command for editing habits.
// ABOUTME: Changes name, description, or duration; the start date is kept.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	editName        string
	editDescription string
	editDays        int
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a habit",
	Long: `Edit a habit's name, description, or number of days.

Changing the number of days recomputes the remaining days from your
completions so far. Renaming keeps the habit's history.

Examples:
  habits edit Run --days 60
  habits edit Run --name Jog --description "Easy pace"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.HabitUpdate
		if cmd.Flags().Changed("name") {
			update.Name = &editName
		}
		if cmd.Flags().Changed("description") {
			update.Description = &editDescription
		}
		if cmd.Flags().Changed("days") {
			update.NumberOfDays = &editDays
		}
		if update.IsEmpty() {
			return fmt.Errorf("nothing to change: use --name, --description, or --days")
		}

		h, err := habitsApp.Habits.Edit(args[0], update)
		if err != nil {
			return err
		}

		color.Green("✓ Updated %s", h.Name)
		fmt.Printf("  %s %s\n", faint.Sprintf("%d/%d days left", h.RemainingDays, h.NumberOfDays), h.Description)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "new habit name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().IntVar(&editDays, "days", 0, "new target number of days")
	rootCmd.AddCommand(editCmd)
}
