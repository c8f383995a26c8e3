package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
)

var fixedNow = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *app.Session {
	t.Helper()
	n := 100
	engine := operations.New(
		operations.WithClock(func() time.Time { return fixedNow }),
		operations.WithIDGenerator(func(kind string) string {
			n++
			return fmt.Sprintf("%s-%d", kind, n)
		}),
	)
	s, err := app.NewSession(engine, store.NewGateway(store.NewMemoryStorage()), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

// run executes the CLI and captures its output
func run(t *testing.T, s *app.Session, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	defer func() {
		stdout, stderr = prevOut, prevErr
	}()
	code := Run(args, s)
	return code, out.String(), errOut.String()
}

func mustRun(t *testing.T, s *app.Session, args ...string) string {
	t.Helper()
	code, out, errOut := run(t, s, args...)
	if code != 0 {
		t.Fatalf("%v: expected exit 0, got %d\nstdout: %s\nstderr: %s", args, code, out, errOut)
	}
	return out
}

func activeBoard(t *testing.T, s *app.Session) models.Board {
	t.Helper()
	board, ok := s.Data().GetActiveBoard()
	if !ok {
		t.Fatal("expected an active board")
	}
	return board
}

func TestRun_UnknownCommand(t *testing.T) {
	s := newTestSession(t)
	code, _, errOut := run(t, s, "frobnicate")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "Unknown command: frobnicate") {
		t.Errorf("expected unknown command message, got %q", errOut)
	}
}

func TestBoardCommands(t *testing.T) {
	s := newTestSession(t)

	out := mustRun(t, s, "board", "add", "Side", "project")
	if !strings.Contains(out, "Added board: Side project") {
		t.Errorf("unexpected output %q", out)
	}

	out = mustRun(t, s, "board", "list")
	if !strings.Contains(out, "* [") || !strings.Contains(out, "Side project (3 columns, 0 cards)") {
		t.Errorf("expected active marker on new board, got %q", out)
	}

	mustRun(t, s, "board", "use", "main board")
	if activeBoard(t, s).Title != "Main Board" {
		t.Errorf("expected Main Board active, got %q", activeBoard(t, s).Title)
	}

	mustRun(t, s, "board", "next")
	if activeBoard(t, s).Title != "Side project" {
		t.Errorf("expected Side project active, got %q", activeBoard(t, s).Title)
	}

	mustRun(t, s, "board", "rename", "Side project", "Hobby")
	mustRun(t, s, "board", "delete", "Hobby")
	if len(s.Data().Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(s.Data().Boards))
	}

	code, _, errOut := run(t, s, "board", "delete", "Main Board")
	if code != 1 || !strings.Contains(errOut, operations.ErrLastBoard.Error()) {
		t.Errorf("expected last board to be refused, got %d %q", code, errOut)
	}
}

func TestNoopExitsZero(t *testing.T) {
	s := newTestSession(t)

	code, out, _ := run(t, s, "board", "use", "Main Board")
	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Nothing to do") {
		t.Errorf("expected no-op reason, got %q", out)
	}
}

func TestColumnCommands(t *testing.T) {
	s := newTestSession(t)

	mustRun(t, s, "column", "add", "Review")
	mustRun(t, s, "column", "move", "Review", "0")
	mustRun(t, s, "column", "rename", "To Do", "Backlog")

	board := activeBoard(t, s)
	var titles []string
	for _, c := range board.Columns {
		titles = append(titles, c.Title)
	}
	if strings.Join(titles, ",") != "Review,Backlog,In Progress,Done" {
		t.Errorf("unexpected columns %v", titles)
	}

	mustRun(t, s, "column", "delete", "Review")
	out := mustRun(t, s, "column", "list")
	if strings.Contains(out, "Review") || !strings.Contains(out, "0. [1] Backlog (0 cards)") {
		t.Errorf("unexpected column list %q", out)
	}

	code, _, _ := run(t, s, "column", "move", "Done", "x")
	if code != 1 {
		t.Errorf("expected exit 1 for bad position, got %d", code)
	}
}

func TestCardCommands(t *testing.T) {
	s := newTestSession(t)
	mustRun(t, s, "label", "add", "Bug", "#EF4444")

	out := mustRun(t, s, "card", "add", "Fix", "login", "-c", "In Progress", "-p", "high", "-due", "2026-02-11T12:00:00Z", "-l", "bug", "-a", "ada")
	if !strings.Contains(out, "Added to In Progress: Fix login") {
		t.Errorf("unexpected output %q", out)
	}

	board := activeBoard(t, s)
	card := board.Columns[1].Cards[0]
	if card.Priority != models.PriorityHigh || len(card.Labels) != 1 || len(card.Assignees) != 1 {
		t.Errorf("unexpected card %+v", card)
	}
	if u, ok := s.Data().FindUser(card.Assignees[0]); !ok || u.Name != "ada" {
		t.Errorf("expected ada to be registered, got %+v", s.Data().Users)
	}

	id := shortID(card.ID)
	mustRun(t, s, "card", "add", "Write docs")

	out = mustRun(t, s, "card", "list")
	if !strings.Contains(out, "Fix login !high") || !strings.Contains(out, "Due today") || !strings.Contains(out, "#Bug") || !strings.Contains(out, "@ada") {
		t.Errorf("unexpected list %q", out)
	}

	mustRun(t, s, "card", "edit", id, "-t", "Fix login flow", "-due", "none")
	_, _, card, _ = s.Data().ResolveCard(models.CardRef{BoardID: board.ID, ColumnID: board.Columns[1].ID, CardID: card.ID})
	if card.Title != "Fix login flow" || card.DueDate != nil || card.Priority != models.PriorityHigh {
		t.Errorf("expected only title and due date to change, got %+v", card)
	}

	mustRun(t, s, "card", "comment", id, "on", "it")
	mustRun(t, s, "card", "move", id, "Done")

	out = mustRun(t, s, "card", "show", id)
	for _, want := range []string{"Fix login flow", "Column:   Done", "on it", "moved from In Progress to Done", `changed title from "Fix login" to "Fix login flow"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected show output to contain %q, got:\n%s", want, out)
		}
	}

	mustRun(t, s, "card", "delete", id)
	if activeBoard(t, s).CardCount() != 1 {
		t.Errorf("expected 1 card left, got %d", activeBoard(t, s).CardCount())
	}

	code, _, errOut := run(t, s, "card", "show", "nope")
	if code != 1 || !strings.Contains(errOut, "no card found") {
		t.Errorf("expected missing card error, got %d %q", code, errOut)
	}
}

func TestCardReorder(t *testing.T) {
	s := newTestSession(t)
	for _, title := range []string{"a", "b", "c"} {
		mustRun(t, s, "card", "add", title)
	}

	cards := activeBoard(t, s).Columns[0].Cards
	mustRun(t, s, "card", "reorder", shortID(cards[0].ID), "2")

	var titles []string
	for _, c := range activeBoard(t, s).Columns[0].Cards {
		titles = append(titles, c.Title)
	}
	if strings.Join(titles, "") != "bca" {
		t.Errorf("expected [b c a], got %v", titles)
	}
}

func TestLabelAndFilterCommands(t *testing.T) {
	s := newTestSession(t)
	mustRun(t, s, "label", "add", "Bug")
	mustRun(t, s, "card", "add", "Crash", "-l", "Bug", "-p", "urgent")
	mustRun(t, s, "card", "add", "Polish")

	out := mustRun(t, s, "filter", "set", "-l", "bug")
	if !strings.Contains(out, "labels=Bug") {
		t.Errorf("unexpected filter output %q", out)
	}

	out = mustRun(t, s, "card", "list")
	if !strings.Contains(out, "Crash") || strings.Contains(out, "Polish") {
		t.Errorf("expected filtered list, got %q", out)
	}
	out = mustRun(t, s, "card", "list", "--all")
	if !strings.Contains(out, "Polish") {
		t.Errorf("expected unfiltered list, got %q", out)
	}

	mustRun(t, s, "label", "update", "Bug", "-n", "Defect", "-color", "#ABC")
	out = mustRun(t, s, "label", "list")
	if !strings.Contains(out, "Defect #abc (1 cards)") {
		t.Errorf("unexpected label list %q", out)
	}

	mustRun(t, s, "label", "delete", "Defect")
	data := s.Data()
	if len(data.Labels) != 0 || len(data.FilterFor(data.ActiveBoard).LabelIDs) != 0 {
		t.Errorf("expected label removed everywhere, got %+v", data)
	}
	for _, c := range activeBoard(t, s).Columns[0].Cards {
		if len(c.Labels) != 0 {
			t.Errorf("expected labels removed from %q", c.Title)
		}
	}

	mustRun(t, s, "filter", "clear")
	code, out, _ := run(t, s, "filter", "clear")
	if code != 0 || !strings.Contains(out, "Nothing to do") {
		t.Errorf("expected second clear to be a no-op, got %d %q", code, out)
	}

	code, _, _ = run(t, s, "filter", "set", "-due", "someday")
	if code != 1 {
		t.Errorf("expected exit 1 for bad due filter, got %d", code)
	}
}

func TestSearch(t *testing.T) {
	s := newTestSession(t)
	mustRun(t, s, "card", "add", "Release notes", "-d", "mention the login fix")

	out := mustRun(t, s, "search", "login")
	if !strings.Contains(out, "Release notes") || !strings.Contains(out, "description:") {
		t.Errorf("unexpected search output %q", out)
	}

	out = mustRun(t, s, "search", "zzz")
	if !strings.Contains(out, "No cards found.") {
		t.Errorf("unexpected search output %q", out)
	}
}

func TestExportImport(t *testing.T) {
	s := newTestSession(t)
	mustRun(t, s, "card", "add", "Keep me")

	path := filepath.Join(t.TempDir(), "backup.yaml")
	out := mustRun(t, s, "export", path)
	if !strings.Contains(out, "Exported to "+path) {
		t.Errorf("unexpected output %q", out)
	}

	other := newTestSession(t)
	mustRun(t, other, "import", path)
	if activeBoard(t, other).CardCount() != 1 {
		t.Errorf("expected imported card, got %+v", activeBoard(t, other))
	}

	mdPath := filepath.Join(t.TempDir(), "board.txt")
	mustRun(t, s, "export", mdPath, "-format", "md")
	code, _, _ := run(t, other, "import", mdPath)
	if code != 1 {
		t.Errorf("expected a .txt file to be rejected as json, got %d", code)
	}
}

func TestDarkMode(t *testing.T) {
	s := newTestSession(t)

	if out := mustRun(t, s, "darkmode"); !strings.Contains(out, "off") {
		t.Errorf("expected off, got %q", out)
	}
	mustRun(t, s, "darkmode", "toggle")
	if !s.DarkMode() {
		t.Error("expected dark mode on")
	}
	mustRun(t, s, "darkmode", "off")
	if s.DarkMode() {
		t.Error("expected dark mode off")
	}
	if code, _, _ := run(t, s, "darkmode", "blue"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestMatchesID(t *testing.T) {
	tests := []struct {
		id       string
		ref      string
		expected bool
	}{
		{"card-1", "card-1", true},
		{"card-1", "1", true},
		{"card-0f3a9c2e-aaaa", "0f3a9c2e", true},
		{"card-0f3a9c2e-aaaa", "0f3a", true},
		{"card-0f3a9c2e-aaaa", "0f3", false},
		{"card-0f3a9c2e-aaaa", "card-0f", true},
		{"card-12", "1", false},
	}

	for _, tt := range tests {
		if got := matchesID(tt.id, tt.ref); got != tt.expected {
			t.Errorf("matchesID(%q, %q): expected %v, got %v", tt.id, tt.ref, tt.expected, got)
		}
	}
}
