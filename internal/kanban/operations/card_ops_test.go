package operations

import (
	"errors"
	"testing"
	"time"

	"taskflow/internal/kanban/models"
)

func TestAddCard(t *testing.T) {
	e := testEngine()
	data := testData()

	got, err := e.AddCard(data, "b1", "B", CardInput{
		Title:  " Write docs ",
		Labels: []string{"bug", "unknown", "bug"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col := got.Boards[0].Columns[1]
	if len(col.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(col.Cards))
	}
	card := col.Cards[0]

	if card.Title != "Write docs" {
		t.Errorf("expected trimmed title, got %q", card.Title)
	}
	if card.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %q", card.Priority)
	}
	if !card.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected createdAt %v, got %v", fixedNow, card.CreatedAt)
	}
	if card.Assignees == nil || len(card.Assignees) != 0 {
		t.Errorf("expected empty assignees, got %v", card.Assignees)
	}
	if !equalStrings(card.Labels, []string{"bug"}) {
		t.Errorf("expected labels [bug], got %v", card.Labels)
	}
	if card.Comments == nil || len(card.Comments) != 0 {
		t.Errorf("expected empty comments, got %v", card.Comments)
	}
	if len(card.Activity) != 1 || card.Activity[0].Type != models.ActivityCreate {
		t.Fatalf("expected single create activity, got %+v", card.Activity)
	}
	if card.Activity[0].UserID != DefaultUserID {
		t.Errorf("expected activity user %q, got %q", DefaultUserID, card.Activity[0].UserID)
	}
	if len(data.Boards[0].Columns[1].Cards) != 0 {
		t.Error("input tree was modified")
	}
}

func TestAddCard_NoOps(t *testing.T) {
	e := testEngine()
	data := testData()

	if _, err := e.AddCard(data, "b1", "A", CardInput{Title: " "}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := e.AddCard(data, "b1", "nope", CardInput{Title: "x"}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
	if _, err := e.AddCard(data, "nope", "A", CardInput{Title: "x"}); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestUpdateCard_RecordsEditActivity(t *testing.T) {
	e := testEngine()
	data := testData()
	ref := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "x"}
	_, _, stored, _ := data.ResolveCard(ref)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	updated := stored
	updated.Title = "x renamed"
	updated.Priority = models.PriorityUrgent
	updated.DueDate = &due
	updated.Activity = nil
	updated.CreatedAt = time.Time{}

	got, err := e.UpdateCard(data, ref, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, card, ok := got.ResolveCard(ref)
	if !ok {
		t.Fatal("card disappeared")
	}
	if card.Title != "x renamed" || card.Priority != models.PriorityUrgent {
		t.Errorf("fields not updated: %+v", card)
	}
	if !card.CreatedAt.Equal(stored.CreatedAt) {
		t.Errorf("createdAt must not change: got %v", card.CreatedAt)
	}

	if len(card.Activity) != 4 {
		t.Fatalf("expected create + 3 edit entries, got %d", len(card.Activity))
	}
	fields := []string{}
	for _, a := range card.Activity[1:] {
		if a.Type != models.ActivityEdit {
			t.Errorf("expected edit activity, got %q", a.Type)
		}
		fields = append(fields, a.Details.Field)
	}
	if !equalStrings(fields, []string{"title", "dueDate", "priority"}) {
		t.Errorf("expected edits for title, dueDate, priority, got %v", fields)
	}
	if card.Activity[1].Details.OldValue != "x" || card.Activity[1].Details.NewValue != "x renamed" {
		t.Errorf("unexpected title details %+v", card.Activity[1].Details)
	}
}

func TestUpdateCard_Assignees(t *testing.T) {
	e := testEngine()
	data := testData()
	ref := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "y"}
	_, _, stored, _ := data.ResolveCard(ref)

	stored.Assignees = []string{"alice"}
	got, err := e.UpdateCard(data, ref, stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, card, _ := got.ResolveCard(ref)
	last, _ := card.LastActivity()
	if last.Type != models.ActivityAssign {
		t.Fatalf("expected assign activity, got %q", last.Type)
	}
	if last.Details.NewValue != "alice" {
		t.Errorf("expected newValue 'alice', got %q", last.Details.NewValue)
	}
}

func TestUpdateCard_NoOps(t *testing.T) {
	e := testEngine()
	data := testData()
	ref := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "x"}
	_, _, stored, _ := data.ResolveCard(ref)

	if _, err := e.UpdateCard(data, ref, stored); !errors.Is(err, ErrUnchanged) {
		t.Errorf("expected ErrUnchanged, got %v", err)
	}

	blank := stored
	blank.Title = ""
	if _, err := e.UpdateCard(data, ref, blank); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}

	missing := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "nope"}
	got, err := e.UpdateCard(data, missing, stored)
	if !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
	if len(got.Boards[0].Columns[0].Cards) != 2 {
		t.Error("expected tree unchanged")
	}
}

func TestUpdateCard_LabelOrderIsNotAnEdit(t *testing.T) {
	e := testEngine()
	data, _ := e.AddLabel(testData(), "UI", "#00ff00")
	uiID := data.Labels[1].ID
	ref := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "x"}

	_, _, card, _ := data.ResolveCard(ref)
	card.Labels = []string{"bug", uiID}
	data, err := e.UpdateCard(data, ref, card)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, card, _ = data.ResolveCard(ref)
	card.Labels = []string{uiID, "bug"}
	if _, err := e.UpdateCard(data, ref, card); !errors.Is(err, ErrUnchanged) {
		t.Errorf("expected ErrUnchanged for reordered labels, got %v", err)
	}
}

func TestDeleteCard(t *testing.T) {
	e := testEngine()
	data := testData()

	got, err := e.DeleteCard(data, models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(cardIDs(got.Boards[0].Columns[0]), []string{"y"}) {
		t.Errorf("expected [y], got %v", cardIDs(got.Boards[0].Columns[0]))
	}
	if len(data.Boards[0].Columns[0].Cards) != 2 {
		t.Error("input tree was modified")
	}

	if _, err := e.DeleteCard(data, models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "nope"}); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestAddComment(t *testing.T) {
	e := New(
		WithClock(func() time.Time { return fixedNow }),
		WithUser("bob"),
	)
	ref := models.CardRef{BoardID: "b1", ColumnID: "A", CardID: "x"}

	got, err := e.AddComment(testData(), ref, "Looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, card, _ := got.ResolveCard(ref)
	if len(card.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(card.Comments))
	}
	c := card.Comments[0]
	if c.Text != "Looks good" || c.UserID != "bob" || !c.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected comment %+v", c)
	}
	last, _ := card.LastActivity()
	if last.Type != models.ActivityComment || last.UserID != "bob" {
		t.Errorf("expected comment activity by bob, got %+v", last)
	}

	if _, err := e.AddComment(got, ref, "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestMoveCard_AcrossColumns(t *testing.T) {
	e := testEngine()
	data := testData()

	got, err := e.MoveCard(data, "A", "B", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	board := got.Boards[0]
	if !equalStrings(cardIDs(board.Columns[0]), []string{"y"}) {
		t.Errorf("expected A:[y], got %v", cardIDs(board.Columns[0]))
	}
	if !equalStrings(cardIDs(board.Columns[1]), []string{"x"}) {
		t.Errorf("expected B:[x], got %v", cardIDs(board.Columns[1]))
	}
	if board.CardCount() != data.Boards[0].CardCount() {
		t.Errorf("card count changed: %d -> %d", data.Boards[0].CardCount(), board.CardCount())
	}

	moved := board.Columns[1].Cards[0]
	if len(moved.Activity) != 2 {
		t.Fatalf("expected exactly one new activity, got %d total", len(moved.Activity))
	}
	last := moved.Activity[1]
	if last.Type != models.ActivityMove {
		t.Errorf("expected move activity, got %q", last.Type)
	}
	if last.Details.From != "A" || last.Details.To != "B" {
		t.Errorf("expected from A to B, got %+v", last.Details)
	}

	original := data.Boards[0]
	if !equalStrings(cardIDs(original.Columns[0]), []string{"x", "y"}) || len(original.Columns[1].Cards) != 0 {
		t.Error("input tree was modified")
	}
	if len(original.Columns[0].Cards[0].Activity) != 1 {
		t.Error("input card activity was modified")
	}
}

func TestMoveCard_DestinationIndex(t *testing.T) {
	e := testEngine()
	data, _ := e.AddCard(testData(), "b1", "B", CardInput{Title: "p"})
	data, _ = e.AddCard(data, "b1", "B", CardInput{Title: "q"})
	pID := data.Boards[0].Columns[1].Cards[0].ID
	qID := data.Boards[0].Columns[1].Cards[1].ID

	got, err := e.MoveCard(data, "A", "B", 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(cardIDs(got.Boards[0].Columns[1]), []string{pID, "y", qID}) {
		t.Errorf("expected y inserted in the middle, got %v", cardIDs(got.Boards[0].Columns[1]))
	}

	got, err = e.MoveCard(data, "A", "B", 0, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(cardIDs(got.Boards[0].Columns[1]), []string{pID, qID, "x"}) {
		t.Errorf("expected x appended, got %v", cardIDs(got.Boards[0].Columns[1]))
	}
}

func TestMoveCard_NoOps(t *testing.T) {
	e := testEngine()
	data := testData()

	if _, err := e.MoveCard(data, "A", "B", 5, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := e.MoveCard(data, "A", "nope", 0, 0); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
	// columns of another board are not reachable from the active board
	if _, err := e.MoveCard(data, "A", "todo", 0, 0); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestMoveCard_SameColumnIsReorder(t *testing.T) {
	e := testEngine()
	got, err := e.MoveCard(testData(), "A", "A", 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := got.Boards[0].Columns[0]
	if !equalStrings(cardIDs(col), []string{"y", "x"}) {
		t.Errorf("expected [y x], got %v", cardIDs(col))
	}
	if len(col.Cards[1].Activity) != 1 {
		t.Error("reorder within a column must not record activity")
	}
}

func TestReorderCard(t *testing.T) {
	e := testEngine()
	data := testData()
	data.Boards[0].Columns[0].Cards = []models.Card{testCard("a"), testCard("b"), testCard("c")}

	got, err := e.ReorderCard(data, "b1", "A", 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(cardIDs(got.Boards[0].Columns[0]), []string{"b", "c", "a"}) {
		t.Errorf("expected [b c a], got %v", cardIDs(got.Boards[0].Columns[0]))
	}

	got, err = e.ReorderCard(data, "b1", "A", 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(cardIDs(got.Boards[0].Columns[0]), []string{"c", "a", "b"}) {
		t.Errorf("expected [c a b], got %v", cardIDs(got.Boards[0].Columns[0]))
	}

	if !equalStrings(cardIDs(data.Boards[0].Columns[0]), []string{"a", "b", "c"}) {
		t.Error("input tree was modified")
	}
	if _, err := e.ReorderCard(data, "b1", "A", 1, 1); !errors.Is(err, ErrUnchanged) {
		t.Errorf("expected ErrUnchanged, got %v", err)
	}
}
