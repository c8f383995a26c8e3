package filter

import (
	"testing"
	"time"

	"taskflow/internal/kanban/models"
)

var now = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func dayOffset(days int) *time.Time {
	t := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &t
}

func priority(p models.Priority) *models.Priority { return &p }

func bucket(b models.DueBucket) *models.DueBucket { return &b }

func testCards() []models.Card {
	return []models.Card{
		{ID: "a", Title: "A", Priority: models.PriorityHigh, Labels: []string{"bug"}, DueDate: dayOffset(-1)},
		{ID: "b", Title: "B", Priority: models.PriorityLow, Labels: []string{"feature"}, DueDate: dayOffset(0)},
		{ID: "c", Title: "C", Priority: models.PriorityHigh, Labels: []string{"bug", "ui"}, DueDate: dayOffset(3)},
		{ID: "d", Title: "D", Priority: models.PriorityMedium, Labels: []string{}},
		{ID: "e", Title: "E", Priority: models.PriorityHigh, Labels: []string{"ui"}, DueDate: dayOffset(30)},
	}
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterCards_NoCriteriaIsIdentity(t *testing.T) {
	cards := testCards()
	got := FilterCards(cards, models.FilterOptions{LabelIDs: []string{}}, now)

	if len(got) != len(cards) {
		t.Fatalf("expected %d cards, got %d", len(cards), len(got))
	}
	if &got[0] != &cards[0] {
		t.Error("expected the input slice to be returned unchanged")
	}
}

func TestFilterCards(t *testing.T) {
	tests := []struct {
		name     string
		opts     models.FilterOptions
		expected []string
	}{
		{
			name:     "single label",
			opts:     models.FilterOptions{LabelIDs: []string{"bug"}},
			expected: []string{"a", "c"},
		},
		{
			name:     "labels are any-of",
			opts:     models.FilterOptions{LabelIDs: []string{"feature", "ui"}},
			expected: []string{"b", "c", "e"},
		},
		{
			name:     "priority",
			opts:     models.FilterOptions{Priority: priority(models.PriorityHigh)},
			expected: []string{"a", "c", "e"},
		},
		{
			name:     "overdue",
			opts:     models.FilterOptions{DueDateFilter: bucket(models.DueOverdue)},
			expected: []string{"a"},
		},
		{
			name:     "today",
			opts:     models.FilterOptions{DueDateFilter: bucket(models.DueToday)},
			expected: []string{"b"},
		},
		{
			name:     "this week",
			opts:     models.FilterOptions{DueDateFilter: bucket(models.DueThisWeek)},
			expected: []string{"c"},
		},
		{
			name:     "future",
			opts:     models.FilterOptions{DueDateFilter: bucket(models.DueFuture)},
			expected: []string{"e"},
		},
		{
			name: "categories are all-of",
			opts: models.FilterOptions{
				LabelIDs: []string{"ui"},
				Priority: priority(models.PriorityHigh),
			},
			expected: []string{"c", "e"},
		},
		{
			name: "all three",
			opts: models.FilterOptions{
				LabelIDs:      []string{"ui", "bug"},
				Priority:      priority(models.PriorityHigh),
				DueDateFilter: bucket(models.DueFuture),
			},
			expected: []string{"e"},
		},
		{
			name:     "no match",
			opts:     models.FilterOptions{Priority: priority(models.PriorityUrgent)},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterCards(testCards(), tt.opts, now))
			if !equalIDs(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilterCards_YesterdayExcludedByToday(t *testing.T) {
	card := models.Card{ID: "late", DueDate: dayOffset(-1)}
	got := FilterCards([]models.Card{card}, models.FilterOptions{DueDateFilter: bucket(models.DueToday)}, now)
	if len(got) != 0 {
		t.Errorf("expected card due yesterday to be excluded, got %v", ids(got))
	}
}

func TestFilterCards_DoesNotMutateInput(t *testing.T) {
	cards := testCards()
	FilterCards(cards, models.FilterOptions{LabelIDs: []string{"bug"}}, now)

	if !equalIDs(ids(cards), []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("input was modified: %v", ids(cards))
	}
}

func TestFilterBoard(t *testing.T) {
	board := models.Board{
		ID: "b1",
		Columns: []models.Column{
			{ID: "todo", Cards: testCards()[:3]},
			{ID: "done", Cards: testCards()[3:]},
		},
	}

	view := FilterBoard(board, models.FilterOptions{Priority: priority(models.PriorityHigh)}, now)

	if !equalIDs(ids(view.Columns[0].Cards), []string{"a", "c"}) {
		t.Errorf("expected [a c] in todo, got %v", ids(view.Columns[0].Cards))
	}
	if !equalIDs(ids(view.Columns[1].Cards), []string{"e"}) {
		t.Errorf("expected [e] in done, got %v", ids(view.Columns[1].Cards))
	}
	if board.CardCount() != 5 {
		t.Errorf("stored board changed: expected 5 cards, got %d", board.CardCount())
	}
}

func TestDescribe(t *testing.T) {
	labels := []models.Label{{ID: "bug", Name: "Bug"}}

	if got := Describe(models.FilterOptions{}, labels); got != "none" {
		t.Errorf("expected 'none', got %q", got)
	}

	got := Describe(models.FilterOptions{
		LabelIDs:      []string{"bug", "gone"},
		DueDateFilter: bucket(models.DueToday),
	}, labels)
	if got != "labels=Bug|gone due=today" {
		t.Errorf("unexpected summary %q", got)
	}
}
