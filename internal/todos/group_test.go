// ABOUTME: Tests for due-date grouping of todos.
// ABOUTME: Checks ordering and relative labels.
package todos

import (
	"testing"
	"time"

	"github.com/harperreed/habits/internal/models"
)

func due(s string) *string { return &s }

func TestGroupByDue(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local)
	items := []models.Todo{
		{ID: 1, Text: "later", DueDate: due("2025-03-20")},
		{ID: 2, Text: "undated"},
		{ID: 3, Text: "tomorrow", DueDate: due("2025-03-11")},
		{ID: 4, Text: "today", DueDate: due("2025-03-10")},
		{ID: 5, Text: "also today", DueDate: due("2025-03-10")},
	}

	groups := GroupByDue(items, now)
	want := []struct {
		key, label string
		n          int
	}{
		{GeneralGroup, "General", 1},
		{"2025-03-10", "Today", 2},
		{"2025-03-11", "Tomorrow", 1},
		{"2025-03-20", "Thu, Mar 20", 1},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, w := range want {
		g := groups[i]
		if g.Key != w.key || g.Label != w.label || len(g.Items) != w.n {
			t.Errorf("group %d = {%s %s %d}, want {%s %s %d}", i, g.Key, g.Label, len(g.Items), w.key, w.label, w.n)
		}
	}
}

func TestGroupByDueEmpty(t *testing.T) {
	if got := GroupByDue(nil, time.Now()); len(got) != 0 {
		t.Errorf("GroupByDue(nil) = %v", got)
	}
}
