package dates

import (
	"testing"
	"time"

	"taskflow/internal/kanban/models"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	// Wednesday afternoon
	now := at(2026, 2, 11, 15)

	tests := []struct {
		name     string
		due      time.Time
		expected models.DueBucket
	}{
		{"yesterday", at(2026, 2, 10, 12), models.DueOverdue},
		{"last second of yesterday", at(2026, 2, 11, 0).Add(-time.Second), models.DueOverdue},
		{"earlier today", at(2026, 2, 11, 1), models.DueToday},
		{"midnight today", at(2026, 2, 11, 0), models.DueToday},
		{"later today", at(2026, 2, 11, 23), models.DueToday},
		{"tomorrow", at(2026, 2, 12, 0), models.DueThisWeek},
		{"six days out", at(2026, 2, 17, 23), models.DueThisWeek},
		{"start of day seven", at(2026, 2, 18, 0), models.DueFuture},
		{"next month", at(2026, 3, 20, 9), models.DueFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.due, now)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestClassify_ExactlyOneBucket(t *testing.T) {
	now := at(2026, 2, 11, 15)
	start := at(2026, 2, 1, 0)

	for h := 0; h < 24*30; h++ {
		due := start.Add(time.Duration(h) * time.Hour)
		matched := 0
		for _, b := range models.DueBuckets {
			if Matches(&due, b, now) {
				matched++
			}
		}
		if matched != 1 {
			t.Fatalf("%v matched %d buckets, expected exactly 1", due, matched)
		}
	}
}

func TestClassify_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 2, 11, 20, 0, 0, 0, loc)

	// 02:00 UTC on Feb 12 is still Feb 11 at UTC-5
	due := time.Date(2026, 2, 12, 2, 0, 0, 0, time.UTC)
	if got := Classify(due, now); got != models.DueToday {
		t.Errorf("expected today, got %q", got)
	}
}

func TestMatches_NoDueDate(t *testing.T) {
	now := at(2026, 2, 11, 15)
	for _, b := range models.DueBuckets {
		if Matches(nil, b, now) {
			t.Errorf("undated card should not match %q", b)
		}
	}
}

func TestStatusText(t *testing.T) {
	now := at(2026, 2, 11, 15)
	if got := StatusText(at(2026, 2, 9, 0), now); got != "Overdue" {
		t.Errorf("expected 'Overdue', got %q", got)
	}
	if got := StatusText(at(2026, 2, 11, 18), now); got != "Due today" {
		t.Errorf("expected 'Due today', got %q", got)
	}
	if got := StatusText(at(2026, 2, 14, 0), now); got != "Due this week" {
		t.Errorf("expected 'Due this week', got %q", got)
	}
	if got := StatusText(at(2026, 4, 1, 0), now); got != "Future" {
		t.Errorf("expected 'Future', got %q", got)
	}
}

func TestParseFilter(t *testing.T) {
	for _, b := range models.DueBuckets {
		got, err := ParseFilter(string(b))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", b, err)
		}
		if got != b {
			t.Errorf("expected %q, got %q", b, got)
		}
	}

	if _, err := ParseFilter("someday"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Format("2006-01-02") != "2026-02-10" {
		t.Errorf("expected 2026-02-10, got %s", d.Format("2006-01-02"))
	}

	if _, err := ParseDate("2026-02-10T09:30:00Z"); err != nil {
		t.Errorf("unexpected error for RFC3339: %v", err)
	}

	if _, err := ParseDate("next tuesday"); err == nil {
		t.Error("expected error for invalid date")
	}
}
