package kanban

import (
	"strings"
	"taskflow/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PriorityInputModel sets a card's priority with the number keys
type PriorityInputModel struct {
	styles   boardStyles
	priority models.Priority
}

func NewPriorityInputModel(current models.Priority, styles boardStyles) PriorityInputModel {
	if !current.Valid() {
		current = models.PriorityMedium
	}
	return PriorityInputModel{
		styles:   styles,
		priority: current,
	}
}

func (m PriorityInputModel) Update(msg tea.KeyMsg) (PriorityInputModel, pickerResult) {
	switch msg.String() {
	case "esc":
		return m, pickerCancel
	case "enter":
		return m, pickerSave
	case "1", "2", "3", "4":
		m.priority = models.Priorities[msg.String()[0]-'1']
	case "j", "down":
		m.step(-1)
	case "k", "up":
		m.step(1)
	}

	return m, pickerOpen
}

func (m *PriorityInputModel) step(delta int) {
	for i, p := range models.Priorities {
		if p == m.priority {
			next := i + delta
			if next >= 0 && next < len(models.Priorities) {
				m.priority = models.Priorities[next]
			}
			return
		}
	}
}

func (m PriorityInputModel) View() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render("Set Priority"))
	s.WriteString("\n\n")

	for i, p := range models.Priorities {
		marker := "  "
		style := m.styles.pickerItem
		if p == m.priority {
			marker = "> "
			style = lipgloss.NewStyle().Bold(true).Foreground(m.styles.priorityColor(p))
		}
		s.WriteString(style.Render(marker + string(rune('1'+i)) + " " + string(p)))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	s.WriteString(m.styles.ModalHelp.Render("1-4: set priority • j/k: lower/raise • enter: save • esc: cancel"))

	return m.styles.inputBox.Render(s.String())
}

func (m PriorityInputModel) GetPriority() models.Priority {
	return m.priority
}
