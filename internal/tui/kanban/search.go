package kanban

import (
	"fmt"
	"strings"
	"taskflow/internal/kanban/search"
	"taskflow/internal/tui/messages"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxSearchResults = 10

func (m BoardModel) startSearch() (BoardModel, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "search all boards..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()
	m.input = ti
	m.searchResults = nil
	m.searchCursor = 0
	m.mode = boardModeSearch
	return m, textinput.Blink
}

func (m BoardModel) updateSearch(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = boardModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.searchCursor >= len(m.searchResults) {
			return m, nil
		}
		m.mode = boardModeNormal
		return m, messages.OpenCard(m.searchResults[m.searchCursor].Ref)
	}

	switch msg.String() {
	case "up", "ctrl+p":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.searchCursor < min(len(m.searchResults), maxSearchResults)-1 {
			m.searchCursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searchResults = search.Cards(m.session.Data(), m.input.Value())
	if len(m.searchResults) > maxSearchResults {
		m.searchResults = m.searchResults[:maxSearchResults]
	}
	m.searchCursor = 0
	return m, cmd
}

func (m BoardModel) renderSearch() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render("Search cards"))
	s.WriteString("\n\n")
	s.WriteString("/ " + m.input.View())
	s.WriteString("\n\n")

	if len(m.searchResults) == 0 && strings.TrimSpace(m.input.Value()) != "" {
		s.WriteString(m.styles.Muted.Render("No matches"))
		s.WriteString("\n")
	}

	for i, r := range m.searchResults {
		line := fmt.Sprintf("%s › %s › %s", r.BoardTitle, r.ColumnTitle, r.CardTitle)
		if i == m.searchCursor {
			s.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		if r.MatchType != search.MatchTitle {
			s.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s: %s", r.MatchType, r.MatchText)))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.styles.ModalHelp.Render("↑/↓: select • enter: open • esc: cancel"))
	return m.styles.searchBox.Render(s.String())
}
