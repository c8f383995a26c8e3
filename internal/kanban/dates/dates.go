package dates

import (
	"fmt"
	"time"

	"taskflow/internal/kanban/models"
)

// WeekWindow is the number of days, counted from the start of today,
// that the thisWeek bucket covers.
const WeekWindow = 7

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify places a due date into exactly one bucket relative to now.
// Buckets are checked in order: overdue, today, thisWeek, future.
// thisWeek ends where future begins, at the start of today + WeekWindow days.
func Classify(due, now time.Time) models.DueBucket {
	due = due.In(now.Location())
	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekEnd := today.AddDate(0, 0, WeekWindow)

	switch {
	case due.Before(today):
		return models.DueOverdue
	case due.Before(tomorrow):
		return models.DueToday
	case due.Before(weekEnd):
		return models.DueThisWeek
	default:
		return models.DueFuture
	}
}

// IsOverdue reports whether due falls before the start of today
func IsOverdue(due, now time.Time) bool {
	return Classify(due, now) == models.DueOverdue
}

// IsToday reports whether due falls on the same calendar day as now
func IsToday(due, now time.Time) bool {
	return Classify(due, now) == models.DueToday
}

// Matches reports whether an optional due date falls into bucket.
// Cards without a due date never match.
func Matches(due *time.Time, bucket models.DueBucket, now time.Time) bool {
	if due == nil {
		return false
	}
	return Classify(*due, now) == bucket
}

// StatusText returns a short human-readable description of the bucket
func StatusText(due, now time.Time) string {
	switch Classify(due, now) {
	case models.DueOverdue:
		return "Overdue"
	case models.DueToday:
		return "Due today"
	case models.DueThisWeek:
		return "Due this week"
	default:
		return "Future"
	}
}

// ParseFilter parses a due-date filter name
func ParseFilter(s string) (models.DueBucket, error) {
	for _, b := range models.DueBuckets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown due date filter %q (want overdue, today, thisWeek or future)", s)
}

// ParseDate parses a due date given as YYYY-MM-DD (local midnight) or RFC 3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// Format renders a due date the way the board shows it
func Format(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}
