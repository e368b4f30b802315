// ABOUTME: Calendar-day identifiers and day-range enumeration.
// ABOUTME: A day string ignores time of day; equal strings mean the same local day.
package days

import "time"

// Layout renders a calendar day, e.g. "Thu Jan 01 1970".
const Layout = "Mon Jan 02 2006"

// DateLayout is the short form used for todo due dates.
const DateLayout = "2006-01-02"

// Key returns the calendar-day string for t in t's location.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Parse converts a calendar-day string back to local midnight.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Range returns every calendar day from start through end, both inclusive.
// It steps with AddDate so daylight-saving shifts never skip or repeat a day.
// An end before start yields an empty range.
func Range(start, end time.Time) []string {
	end = end.In(start.Location())
	first := Midnight(start)
	last := Midnight(end)

	var out []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, Key(d))
	}
	return out
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Key(a) == Key(b.In(a.Location()))
}
