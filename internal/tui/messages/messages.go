package messages

import (
	"taskflow/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
)

// DarkModeMsg is sent after the dark mode preference changed
type DarkModeMsg struct {
	Dark bool
}

// ExportDoneMsg reports the result of a background export
type ExportDoneMsg struct {
	Path string
	Err  error
}

// OpenCardMsg requests focusing a card found elsewhere, e.g. by search
type OpenCardMsg struct {
	Ref models.CardRef
}

func OpenCard(ref models.CardRef) tea.Cmd {
	return func() tea.Msg {
		return OpenCardMsg{Ref: ref}
	}
}
