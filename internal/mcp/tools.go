// ABOUTME: MCP tool implementations for habits and todos.
// ABOUTME: Provides create, edit, complete, delete, and query operations.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/todos"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a habit to track for a number of days",
	}, s.handleAddHabit)

	// edit_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_habit",
		Description: "Rename a habit or change its description or duration",
	}, s.handleEditHabit)

	// complete_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_habit",
		Description: "Mark a habit as done for today",
	}, s.handleCompleteHabit)

	// delete_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit and its habit todos",
	}, s.handleDeleteHabit)

	// list_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List habits with progress, optionally filtered by a search term",
	}, s.handleListHabits)

	// missed_days
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "missed_days",
		Description: "List the days a habit was not completed since it started",
	}, s.handleMissedDays)

	// completion_rate
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "completion_rate",
		Description: "Average completion percentage across all habits",
	}, s.handleCompletionRate)

	// add_todo
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_todo",
		Description: "Add a todo, optionally due on a date or attached to a habit",
	}, s.handleAddTodo)

	// list_todos
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_todos",
		Description: "List general todos, or the todos of one habit, grouped by due date",
	}, s.handleListTodos)

	// toggle_todo
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_todo",
		Description: "Flip a todo between done and not done",
	}, s.handleToggleTodo)

	// update_todo
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_todo",
		Description: "Replace the text of a todo",
	}, s.handleUpdateTodo)

	// delete_todo
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_todo",
		Description: "Delete a todo",
	}, s.handleDeleteTodo)
}

// Tool input/output types

type addHabitInput struct {
	Name         string `json:"name" jsonschema:"Habit name, unique ignoring case"`
	Description  string `json:"description" jsonschema:"What the habit involves"`
	NumberOfDays int    `json:"number_of_days" jsonschema:"Target duration in days"`
}

type editHabitInput struct {
	Name         string  `json:"name" jsonschema:"Current habit name"`
	NewName      *string `json:"new_name,omitempty" jsonschema:"New habit name"`
	Description  *string `json:"description,omitempty" jsonschema:"New description"`
	NumberOfDays *int    `json:"number_of_days,omitempty" jsonschema:"New target duration in days"`
}

type habitNameInput struct {
	Name string `json:"name" jsonschema:"Habit name"`
}

type listHabitsInput struct {
	Search string `json:"search,omitempty" jsonschema:"Filter by name or description"`
}

type habitView struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	NumberOfDays    int      `json:"number_of_days"`
	RemainingDays   int      `json:"remaining_days"`
	StartDate       string   `json:"start_date"`
	CompletedToday  bool     `json:"completed_today"`
	CompletionDates []string `json:"completion_dates"`
	Progress        int      `json:"progress"`
}

type habitOutput struct {
	Habit   habitView `json:"habit"`
	Message string    `json:"message"`
}

type listHabitsOutput struct {
	Habits []habitView `json:"habits"`
	Count  int         `json:"count"`
}

type missedDaysOutput struct {
	Name       string   `json:"name"`
	MissedDays []string `json:"missed_days"`
	Count      int      `json:"count"`
}

type completionRateOutput struct {
	CompletionRate int    `json:"completion_rate"`
	Message        string `json:"message"`
}

type addTodoInput struct {
	Text      string `json:"text" jsonschema:"What needs doing"`
	DueDate   string `json:"due_date,omitempty" jsonschema:"Due date as YYYY-MM-DD"`
	HabitName string `json:"habit_name,omitempty" jsonschema:"Attach the todo to this habit"`
}

type listTodosInput struct {
	HabitName string `json:"habit_name,omitempty" jsonschema:"List the todos of this habit instead of general todos"`
}

type todoIDInput struct {
	ID          int  `json:"id" jsonschema:"Todo ID"`
	HabitScoped bool `json:"habit_scoped,omitempty" jsonschema:"Target the habit todo list"`
}

type updateTodoInput struct {
	ID          int    `json:"id" jsonschema:"Todo ID"`
	Text        string `json:"text" jsonschema:"Replacement text"`
	HabitScoped bool   `json:"habit_scoped,omitempty" jsonschema:"Target the habit todo list"`
}

type todoOutput struct {
	Todo    models.Todo `json:"todo"`
	Message string      `json:"message"`
}

type listTodosOutput struct {
	Groups []todos.Group `json:"groups"`
	Count  int           `json:"count"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func (s *Server) view(h models.Habit) habitView {
	return habitView{
		Name:            h.Name,
		Description:     h.Description,
		NumberOfDays:    h.NumberOfDays,
		RemainingDays:   h.RemainingDays,
		StartDate:       h.StartDate.Format(time.RFC3339),
		CompletedToday:  s.app.Habits.CompletedToday(h),
		CompletionDates: h.CompletionDates,
		Progress:        habits.Progress(h),
	}
}

// Tool handlers

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.app.Habits.Create(input.Name, input.Description, input.NumberOfDays)
	if err != nil {
		return nil, habitOutput{}, err
	}

	return nil, habitOutput{
		Habit:   s.view(*h),
		Message: fmt.Sprintf("Added habit %s for %d days", h.Name, h.NumberOfDays),
	}, nil
}

func (s *Server) handleEditHabit(ctx context.Context, req *mcp.CallToolRequest, input editHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	update := models.HabitUpdate{
		Name:         input.NewName,
		Description:  input.Description,
		NumberOfDays: input.NumberOfDays,
	}
	if update.IsEmpty() {
		return nil, habitOutput{}, fmt.Errorf("%w: nothing to change", models.ErrInvalidInput)
	}

	h, err := s.app.Habits.Edit(input.Name, update)
	if err != nil {
		return nil, habitOutput{}, err
	}

	return nil, habitOutput{
		Habit:   s.view(*h),
		Message: fmt.Sprintf("Updated habit %s", h.Name),
	}, nil
}

func (s *Server) handleCompleteHabit(ctx context.Context, req *mcp.CallToolRequest, input habitNameInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.app.Habits.CompleteToday(input.Name)
	if err != nil {
		return nil, habitOutput{}, err
	}

	return nil, habitOutput{
		Habit:   s.view(*h),
		Message: fmt.Sprintf("Completed %s for today, %d days remaining", h.Name, h.RemainingDays),
	}, nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input habitNameInput) (*mcp.CallToolResult, simpleOutput, error) {
	deleted, removed := s.app.DeleteHabit(input.Name)
	if !deleted {
		return nil, simpleOutput{}, fmt.Errorf("delete habit %q: %w", input.Name, models.ErrNotFound)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit %s and %d todos", input.Name, removed),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	found := s.app.Habits.Search(input.Search)

	out := listHabitsOutput{Habits: []habitView{}, Count: len(found)}
	for _, h := range found {
		out.Habits = append(out.Habits, s.view(h))
	}
	return nil, out, nil
}

func (s *Server) handleMissedDays(ctx context.Context, req *mcp.CallToolRequest, input habitNameInput) (*mcp.CallToolResult, missedDaysOutput, error) {
	missed, err := s.app.Habits.MissedDays(input.Name)
	if err != nil {
		return nil, missedDaysOutput{}, err
	}

	return nil, missedDaysOutput{
		Name:       input.Name,
		MissedDays: missed,
		Count:      len(missed),
	}, nil
}

func (s *Server) handleCompletionRate(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, completionRateOutput, error) {
	rate := s.app.Habits.CompletionRate()
	return nil, completionRateOutput{
		CompletionRate: rate,
		Message:        fmt.Sprintf("Overall completion rate: %d%%", rate),
	}, nil
}

func (s *Server) handleAddTodo(ctx context.Context, req *mcp.CallToolRequest, input addTodoInput) (*mcp.CallToolResult, todoOutput, error) {
	due := strings.TrimSpace(input.DueDate)
	if due != "" {
		if _, err := time.Parse(days.DateLayout, due); err != nil {
			return nil, todoOutput{}, fmt.Errorf("%w: due date must be YYYY-MM-DD, got %q", models.ErrInvalidInput, due)
		}
	}

	habitName := strings.TrimSpace(input.HabitName)
	if habitName != "" {
		if _, err := s.app.Habits.Get(habitName); err != nil {
			return nil, todoOutput{}, err
		}
	}

	t, ok := s.app.Todos.ListFor(habitName).Add(input.Text, due, habitName)
	if !ok {
		return nil, todoOutput{}, fmt.Errorf("%w: todo text is required", models.ErrInvalidInput)
	}

	return nil, todoOutput{Todo: t, Message: fmt.Sprintf("Added todo %d", t.ID)}, nil
}

func (s *Server) handleListTodos(ctx context.Context, req *mcp.CallToolRequest, input listTodosInput) (*mcp.CallToolResult, listTodosOutput, error) {
	var items []models.Todo
	if input.HabitName != "" {
		items = s.app.Todos.Habit.ForHabit(input.HabitName)
	} else {
		items = s.app.Todos.General.Items()
	}

	groups := todos.GroupByDue(items, s.app.Clock.Now())
	if groups == nil {
		groups = []todos.Group{}
	}
	return nil, listTodosOutput{Groups: groups, Count: len(items)}, nil
}

func (s *Server) handleToggleTodo(ctx context.Context, req *mcp.CallToolRequest, input todoIDInput) (*mcp.CallToolResult, todoOutput, error) {
	list := s.todoList(input.HabitScoped)
	if !list.Toggle(input.ID) {
		return nil, todoOutput{}, todoNotFound(input.ID)
	}

	t, _ := list.Get(input.ID)
	state := "open"
	if t.Done {
		state = "done"
	}
	return nil, todoOutput{Todo: t, Message: fmt.Sprintf("Todo %d is now %s", t.ID, state)}, nil
}

func (s *Server) handleUpdateTodo(ctx context.Context, req *mcp.CallToolRequest, input updateTodoInput) (*mcp.CallToolResult, todoOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, todoOutput{}, fmt.Errorf("%w: todo text is required", models.ErrInvalidInput)
	}

	list := s.todoList(input.HabitScoped)
	if !list.Update(input.ID, strings.TrimSpace(input.Text)) {
		return nil, todoOutput{}, todoNotFound(input.ID)
	}

	t, _ := list.Get(input.ID)
	return nil, todoOutput{Todo: t, Message: fmt.Sprintf("Updated todo %d", t.ID)}, nil
}

func (s *Server) handleDeleteTodo(ctx context.Context, req *mcp.CallToolRequest, input todoIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !s.todoList(input.HabitScoped).Remove(input.ID) {
		return nil, simpleOutput{}, todoNotFound(input.ID)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted todo %d", input.ID)}, nil
}

func (s *Server) todoList(habitScoped bool) *todos.List {
	if habitScoped {
		return s.app.Todos.Habit
	}
	return s.app.Todos.General
}

func todoNotFound(id int) error {
	return fmt.Errorf("todo %d: %w", id, models.ErrNotFound)
}

// isNotFound is shared by the resource handlers.
func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
