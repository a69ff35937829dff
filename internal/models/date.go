package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for AttendanceEntry.Date.
const DateLayout = "2006-01-02"

// ParseDate parses a yyyy-mm-dd date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected yyyy-mm-dd", s)
	}
	return t, nil
}

// FormatDate formats t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekStart returns midnight of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// Workweek returns the Monday to Friday dates of t's week.
func Workweek(t time.Time) []string {
	monday := WeekStart(t)
	days := make([]string, 5)
	for i := range days {
		days[i] = FormatDate(monday.AddDate(0, 0, i))
	}
	return days
}
