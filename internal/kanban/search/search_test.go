package search

import (
	"testing"

	"taskflow/internal/kanban/models"
)

func testData() models.KanbanData {
	return models.KanbanData{
		Boards: []models.Board{
			{
				ID:    "b1",
				Title: "Work",
				Columns: []models.Column{
					{ID: "todo", Title: "To Do", Cards: []models.Card{
						{ID: "c1", Title: "Fix login bug"},
						{ID: "c2", Title: "Quarterly report", Description: "Collect the numbers for the login dashboard before Friday"},
					}},
				},
			},
			{
				ID:    "b2",
				Title: "Home",
				Columns: []models.Column{
					{ID: "later", Title: "Later", Cards: []models.Card{
						{ID: "c3", Title: "Paint fence", Comments: []models.Comment{{ID: "m1", Text: "Ask about LOGIN for the hardware store"}}},
						{ID: "c4", Title: "Groceries"},
					}},
				},
			},
		},
		ActiveBoard: "b1",
	}
}

func TestCards_EmptyTerm(t *testing.T) {
	if got := Cards(testData(), "   "); got != nil {
		t.Errorf("expected no results, got %v", got)
	}
}

func TestCards_MatchPrecedence(t *testing.T) {
	results := Cards(testData(), "login")

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}

	expected := []struct {
		cardID string
		kind   MatchType
	}{
		{"c1", MatchTitle},
		{"c2", MatchDescription},
		{"c3", MatchComment},
	}
	for i, e := range expected {
		if results[i].Ref.CardID != e.cardID || results[i].MatchType != e.kind {
			t.Errorf("result %d: expected %s/%s, got %s/%s", i, e.cardID, e.kind, results[i].Ref.CardID, results[i].MatchType)
		}
	}

	ref := results[2].Ref
	if ref.BoardID != "b2" || ref.ColumnID != "later" {
		t.Errorf("unexpected ref %+v", ref)
	}
	if results[2].BoardTitle != "Home" || results[2].ColumnTitle != "Later" {
		t.Errorf("unexpected titles %q / %q", results[2].BoardTitle, results[2].ColumnTitle)
	}
}

func TestCards_FuzzyTitle(t *testing.T) {
	results := Cards(testData(), "grcr")
	if len(results) != 1 || results[0].Ref.CardID != "c4" {
		t.Fatalf("expected fuzzy match on Groceries, got %+v", results)
	}
	if len(results[0].MatchedIndexes) != 4 {
		t.Errorf("expected 4 matched indexes, got %v", results[0].MatchedIndexes)
	}
}

func TestExcerpt(t *testing.T) {
	text := "Collect the numbers for the login dashboard before Friday"
	got, ok := excerpt(text, "login")
	if !ok {
		t.Fatal("expected a match")
	}
	expected := "...the numbers for the login dashboard before Fr..."
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	if _, ok := excerpt(text, "absent"); ok {
		t.Error("expected no match")
	}
}
