package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/internal/app"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
	"taskflow/internal/tui/messages"
)

func newTestApp(t *testing.T) (AppModel, *app.Session) {
	t.Helper()
	s, err := app.NewSession(operations.New(), store.NewGateway(store.NewMemoryStorage()), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewAppModel(s)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return next.(AppModel), s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppModel_DarkMode(t *testing.T) {
	m, s := newTestApp(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("expected a dark mode command")
	}
	msg, ok := cmd().(messages.DarkModeMsg)
	if !ok {
		t.Fatalf("expected DarkModeMsg, got %T", cmd())
	}
	if !msg.Dark || !s.DarkMode() {
		t.Errorf("expected dark mode on, got msg %v session %v", msg.Dark, s.DarkMode())
	}

	next, _ := m.Update(msg)
	if !strings.Contains(next.View(), "dark") {
		t.Error("expected status bar to show dark mode")
	}
}

func TestAppModel_HelpOverlay(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(runes("?"))
	m = next.(AppModel)
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected shortcuts in the overlay")
	}

	next, _ = m.Update(runes("x"))
	if next.(AppModel).showHelp {
		t.Error("expected any key to close the overlay")
	}
}

func TestAppModel_Quit(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppModel_QuitKeyGoesToPrompt(t *testing.T) {
	m, s := newTestApp(t)

	next, _ := m.Update(runes("n"))
	next, _ = next.Update(runes("q"))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	board, _ := s.Data().GetActiveBoard()
	cards := board.Columns[0].Cards
	if len(cards) != 1 || cards[0].Title != "q" {
		t.Fatalf("expected a card titled q, got %+v", cards)
	}
	if next.(AppModel).boardView.IsModal() {
		t.Error("expected prompt closed")
	}
}
