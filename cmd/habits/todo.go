// ABOUTME: CLI commands for general and habit todos.
// ABOUTME: Supports add, list, done, edit, rm, and clear.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/todos"
	"github.com/spf13/cobra"
)

var (
	todoHabit string
	todoDue   string
)

var todoCmd = &cobra.Command{
	Use:     "todo",
	Aliases: []string{"t"},
	Short:   "Manage todos",
	Long: `Manage general todos and todos attached to a habit.

Use --habit to work with a habit's todo list instead of the general list.
Todo IDs are numbers shown by 'habits todo list'.

COMMANDS:

  add     Add a todo, optionally with --due YYYY-MM-DD
  list    List todos grouped by due date
  done    Toggle a todo between done and open
  edit    Replace a todo's text
  rm      Delete a todo
  clear   Delete every todo in the list`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if todoDue != "" {
			if _, err := time.Parse(days.DateLayout, todoDue); err != nil {
				return fmt.Errorf("invalid due date: %s (use YYYY-MM-DD)", todoDue)
			}
		}
		if todoHabit != "" {
			if _, err := habitsApp.Habits.Get(todoHabit); err != nil {
				return err
			}
		}

		t, ok := habitsApp.Todos.ListFor(todoHabit).Add(strings.Join(args, " "), todoDue, todoHabit)
		if !ok {
			return fmt.Errorf("%w: todo text is required", models.ErrInvalidInput)
		}

		color.Green("✓ Added todo %d", t.ID)
		fmt.Printf("  %s\n", t.Text)
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos grouped by due date",
	RunE: func(cmd *cobra.Command, args []string) error {
		var items []models.Todo
		if todoHabit != "" {
			items = habitsApp.Todos.Habit.ForHabit(todoHabit)
		} else {
			items = habitsApp.Todos.General.Items()
		}

		if len(items) == 0 {
			fmt.Println("No todos found.")
			return nil
		}

		for i, g := range todos.GroupByDue(items, clock.Now()) {
			if i > 0 {
				fmt.Println()
			}
			color.New(color.Bold).Println(g.Label)
			for _, t := range g.Items {
				printTodo(t)
			}
		}
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a todo between done and open",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		list, err := scopedTodo(id)
		if err != nil {
			return err
		}
		if !list.Toggle(id) {
			return fmt.Errorf("todo %d: %w", id, models.ErrNotFound)
		}

		t, _ := list.Get(id)
		if t.Done {
			color.Green("✓ Done: %s", t.Text)
		} else {
			fmt.Printf("Reopened: %s\n", t.Text)
		}
		return nil
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace a todo's text",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return fmt.Errorf("%w: todo text is required", models.ErrInvalidInput)
		}
		list, err := scopedTodo(id)
		if err != nil {
			return err
		}
		if !list.Update(id, text) {
			return fmt.Errorf("todo %d: %w", id, models.ErrNotFound)
		}

		color.Green("✓ Updated todo %d", id)
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		list, err := scopedTodo(id)
		if err != nil {
			return err
		}
		t, _ := list.Get(id)
		if !list.Remove(id) {
			fmt.Println("Canceled.")
			return nil
		}

		color.Yellow("✗ Deleted todo %d", id)
		fmt.Printf("  %s\n", faint.Sprint(t.Text))
		return nil
	},
}

var todoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every todo in the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		if todoHabit != "" {
			n = habitsApp.Todos.Habit.RemoveAllForHabit(todoHabit)
		} else {
			n = habitsApp.Todos.General.RemoveAll()
		}

		color.Yellow("✗ Deleted %d todos", n)
		return nil
	},
}

// scopedTodo returns the list holding id for the current --habit scope.
// With --habit set, the todo must belong to that habit.
func scopedTodo(id int) (*todos.List, error) {
	list := habitsApp.Todos.ListFor(todoHabit)
	t, err := list.Get(id)
	if err != nil {
		return nil, err
	}
	if todoHabit != "" && t.HabitName != todoHabit {
		return nil, fmt.Errorf("todo %d for habit %q: %w", id, todoHabit, models.ErrNotFound)
	}
	return list, nil
}

func parseTodoID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id: %s", s)
	}
	return id, nil
}

func printTodo(t models.Todo) {
	box := "[ ]"
	text := t.Text
	if t.Done {
		box = color.GreenString("[x]")
		text = faint.Sprint(t.Text)
	}
	fmt.Printf("  %s %s %s\n", faint.Sprintf("%3d", t.ID), box, text)
}

func init() {
	todoAddCmd.Flags().StringVar(&todoDue, "due", "", "due date (YYYY-MM-DD)")
	for _, c := range []*cobra.Command{todoAddCmd, todoListCmd, todoDoneCmd, todoEditCmd, todoRmCmd, todoClearCmd} {
		c.Flags().StringVar(&todoHabit, "habit", "", "use this habit's todo list")
		todoCmd.AddCommand(c)
	}
	rootCmd.AddCommand(todoCmd)
}
