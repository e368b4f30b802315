// ABOUTME: Groups todos by due date for display.
// ABOUTME: Undated todos form the "general" group, listed first.
package todos

import (
	"sort"
	"time"

	"github.com/harperreed/habits/internal/models"
)

// GeneralGroup is the key of the group holding undated todos.
const GeneralGroup = "general"

// Group is a set of todos sharing a due date.
type Group struct {
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Items []models.Todo `json:"items"`
}

// GroupByDue buckets items by due date, general first then dates ascending.
// Labels read "Today" and "Tomorrow" relative to now.
func GroupByDue(items []models.Todo, now time.Time) []Group {
	buckets := make(map[string][]models.Todo)
	for _, t := range items {
		key := GeneralGroup
		if d, ok := t.Due(); ok {
			key = d.Format("2006-01-02")
		}
		buckets[key] = append(buckets[key], t.Clone())
	}

	var dates []string
	for k := range buckets {
		if k != GeneralGroup {
			dates = append(dates, k)
		}
	}
	sort.Strings(dates)

	var groups []Group
	if general, ok := buckets[GeneralGroup]; ok {
		groups = append(groups, Group{Key: GeneralGroup, Label: "General", Items: general})
	}

	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	for _, d := range dates {
		label := d
		switch d {
		case today:
			label = "Today"
		case tomorrow:
			label = "Tomorrow"
		default:
			if t, err := time.ParseInLocation("2006-01-02", d, now.Location()); err == nil {
				label = t.Format("Mon, Jan 2")
			}
		}
		groups = append(groups, Group{Key: d, Label: label, Items: buckets[d]})
	}
	return groups
}
