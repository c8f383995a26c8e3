package operations

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"taskflow/internal/kanban/models"
)

var fixedNow = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	n := 0
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func(kind string) string {
			n++
			return fmt.Sprintf("%s-%d", kind, n)
		}),
	)
}

func testCard(id string) models.Card {
	return models.Card{
		ID:        id,
		Title:     id,
		CreatedAt: fixedNow.Add(-time.Hour),
		Priority:  models.PriorityMedium,
		Assignees: []string{},
		Labels:    []string{},
		Comments:  []models.Comment{},
		Activity:  []models.Activity{{ID: "activity-0", Type: models.ActivityCreate, UserID: DefaultUserID, Timestamp: fixedNow.Add(-time.Hour)}},
	}
}

// testData builds board b1 with columns A:[x, y] and B:[], plus a second board b2
func testData() models.KanbanData {
	return models.KanbanData{
		Boards: []models.Board{
			{
				ID:    "b1",
				Title: "Work",
				Columns: []models.Column{
					{ID: "A", Title: "A", Cards: []models.Card{testCard("x"), testCard("y")}},
					{ID: "B", Title: "B", Cards: []models.Card{}},
				},
			},
			{
				ID:    "b2",
				Title: "Home",
				Columns: []models.Column{
					{ID: "todo", Title: "To Do", Cards: []models.Card{testCard("z")}},
				},
			},
		},
		ActiveBoard: "b1",
		Labels:      []models.Label{{ID: "bug", Name: "Bug", Color: "#ff0000"}},
		Filters:     map[string]models.FilterOptions{},
	}
}

func cardIDs(col models.Column) []string {
	out := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		out[i] = c.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
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

func TestIsNoop(t *testing.T) {
	if !IsNoop(ErrCardNotFound) {
		t.Error("expected ErrCardNotFound to be a no-op")
	}
	if !IsNoop(fmt.Errorf("wrapped: %w", ErrEmptyTitle)) {
		t.Error("expected wrapped ErrEmptyTitle to be a no-op")
	}
	if IsNoop(errors.New("disk full")) {
		t.Error("unexpected no-op for unrelated error")
	}
	if IsNoop(nil) {
		t.Error("nil should not be a no-op")
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New()
	if e.UserID() != DefaultUserID {
		t.Errorf("expected user %q, got %q", DefaultUserID, e.UserID())
	}
	if e.Now().Location() != time.UTC {
		t.Errorf("expected UTC time, got %v", e.Now().Location())
	}

	id := NewID("card")
	if len(id) <= len("card-") || id[:5] != "card-" {
		t.Errorf("unexpected id %q", id)
	}
	if NewID("card") == id {
		t.Error("expected unique ids")
	}
}

func TestWithUser(t *testing.T) {
	e := New(WithUser("alice"))
	if e.UserID() != "alice" {
		t.Errorf("expected alice, got %q", e.UserID())
	}

	e = New(WithUser(""))
	if e.UserID() != DefaultUserID {
		t.Errorf("expected empty user to keep default, got %q", e.UserID())
	}
}

func TestMoveItem(t *testing.T) {
	tests := []struct {
		from, to int
		expected []string
	}{
		{0, 2, []string{"b", "c", "a"}},
		{2, 0, []string{"c", "a", "b"}},
		{0, 1, []string{"b", "a", "c"}},
		{1, 99, []string{"a", "c", "b"}},
		{1, -5, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		input := []string{"a", "b", "c"}
		got, err := moveItem(input, tt.from, tt.to)
		if err != nil {
			t.Fatalf("moveItem(%d, %d): unexpected error %v", tt.from, tt.to, err)
		}
		if !equalStrings(got, tt.expected) {
			t.Errorf("moveItem(%d, %d): expected %v, got %v", tt.from, tt.to, tt.expected, got)
		}
		if !equalStrings(input, []string{"a", "b", "c"}) {
			t.Errorf("moveItem modified its input: %v", input)
		}
	}

	if _, err := moveItem([]string{"a"}, 3, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}
