// ABOUTME: MCP resource implementations for the habit tracker.
// ABOUTME: Provides habits://today and habits://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/habits/internal/days"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// habits://today - what is done and what is still due today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "habits://today",
		Name:        "Today's Habits",
		Description: "Habits completed today and habits still waiting",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// habits://summary - counts, completion rate, and per-habit progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "habits://summary",
		Name:        "Habit Summary Dashboard",
		Description: "Completion rate, active and finished counts, and open todos",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := s.app.Clock.Now()

	pending := []habitView{}
	for _, h := range s.app.Habits.Reminders() {
		pending = append(pending, s.view(h))
	}

	done := []habitView{}
	for _, h := range s.app.Habits.List() {
		if s.app.Habits.CompletedToday(h) {
			done = append(done, s.view(h))
		}
	}

	dueToday := 0
	for _, t := range s.app.Todos.General.Items() {
		if d, ok := t.Due(); ok && !t.Done && days.SameDay(d, now) {
			dueToday++
		}
	}

	result := map[string]any{
		"date":      days.Key(now),
		"pending":   pending,
		"completed": done,
		"counts": map[string]int{
			"pending":         len(pending),
			"completed":       len(done),
			"todos_due_today": dueToday,
		},
	}
	return jsonResource("habits://today", result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sum := s.app.Habits.Summary()

	habitList := []map[string]any{}
	for _, h := range s.app.Habits.List() {
		missed, err := s.app.Habits.MissedDays(h.Name)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to compute missed days: %w", err)
		}
		habitList = append(habitList, map[string]any{
			"habit":        s.view(h),
			"missed_count": len(missed),
		})
	}

	openTodos := 0
	for _, t := range s.app.Todos.General.Items() {
		if !t.Done {
			openTodos++
		}
	}
	openHabitTodos := 0
	for _, t := range s.app.Todos.Habit.Items() {
		if !t.Done {
			openHabitTodos++
		}
	}

	result := map[string]any{
		"generated_at": s.app.Clock.Now().Format(time.RFC3339),
		"summary":      sum,
		"habits":       habitList,
		"todos": map[string]int{
			"open_general": openTodos,
			"open_habit":   openHabitTodos,
		},
	}
	return jsonResource("habits://summary", result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
