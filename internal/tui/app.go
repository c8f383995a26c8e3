package tui

import (
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/logs"
	kanbanview "taskflow/internal/tui/kanban"
	"taskflow/internal/tui/messages"
	"taskflow/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root model: global keys, the help overlay and the status
// bar around the board view
type AppModel struct {
	session   *app.Session
	keys      kanbanview.KeyMap
	styles    theme.Styles
	boardView kanbanview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(session *app.Session) AppModel {
	keys := kanbanview.DefaultKeyMap()
	return AppModel{
		session:   session,
		keys:      keys,
		styles:    theme.New(theme.For(session.DarkMode())),
		boardView: kanbanview.NewBoardModel(session, keys),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-3) // Reserve space for status bar
		return m, nil

	case messages.DarkModeMsg:
		m.styles = theme.New(theme.For(msg.Dark))
		m.boardView.SetDark(msg.Dark)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if key.Matches(msg, m.keys.DarkMode) {
			return m, m.toggleDarkMode()
		}

		// Prompts and overlays get every other key
		if !m.boardView.IsModal() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.showHelp = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) toggleDarkMode() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		if _, err := session.Dispatch(app.ToggleDarkMode{}); err != nil {
			logs.Logger.Printf("Error toggling dark mode: %v", err)
		}
		return messages.DarkModeMsg{Dark: session.DarkMode()}
	}
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	mode := "light"
	if m.session.DarkMode() {
		mode = "dark"
	}
	statusText := "taskflow | " + mode + " | ?: help | q: quit"

	statusBar := m.styles.StatusBar.Width(m.width).Render(
		m.styles.HelpHint.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}

func (m AppModel) renderHelpOverlay() string {
	sections := []string{"Navigation", "Cards and columns", "Boards and filters", "General"}

	line := func(b key.Binding) string {
		h := b.Help()
		return "  " + m.styles.HelpKey.Width(14).Render(h.Key) + m.styles.HelpDesc.Render(h.Desc)
	}

	var content strings.Builder
	content.WriteString(m.styles.Title.Render("taskflow - Keyboard Shortcuts") + "\n\n")

	for i, group := range m.keys.FullHelp() {
		if i < len(sections) {
			content.WriteString(m.styles.Title.Render(sections[i]) + "\n")
		}
		for _, b := range group {
			content.WriteString(line(b) + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(m.styles.HelpHint.Render("Press any key to close"))

	box := m.styles.ModalBox.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
