package kanban

import (
	"strings"
	"taskflow/internal/kanban/models"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CardFormModel edits a card's title and markdown description
type CardFormModel struct {
	styles      boardStyles
	title       textinput.Model
	description textarea.Model
	onDesc      bool // focus is on the description
	err         string
}

func NewCardFormModel(card models.Card, styles boardStyles) CardFormModel {
	ti := textinput.New()
	ti.Placeholder = "card title"
	ti.CharLimit = 200
	ti.Width = 56
	ti.SetValue(card.Title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Markdown..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(56)
	ta.SetHeight(8)
	ta.SetValue(card.Description)
	ta.Blur()

	return CardFormModel{
		styles:      styles,
		title:       ti,
		description: ta,
	}
}

// Update handles form events. Enter in the title or ctrl+s anywhere saves;
// tab moves between the fields.
func (m CardFormModel) Update(msg tea.KeyMsg) (CardFormModel, tea.Cmd, pickerResult) {
	m.err = ""

	switch msg.String() {
	case "esc":
		return m, nil, pickerCancel

	case "ctrl+s":
		return m.save()

	case "tab", "shift+tab":
		m.onDesc = !m.onDesc
		if m.onDesc {
			m.title.Blur()
			return m, m.description.Focus(), pickerOpen
		}
		m.description.Blur()
		return m, m.title.Focus(), pickerOpen

	case "enter":
		if !m.onDesc {
			return m.save()
		}
	}

	var cmd tea.Cmd
	if m.onDesc {
		m.description, cmd = m.description.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return m, cmd, pickerOpen
}

func (m CardFormModel) save() (CardFormModel, tea.Cmd, pickerResult) {
	if m.Title() == "" {
		m.err = "Title cannot be empty"
		return m, nil, pickerOpen
	}
	return m, nil, pickerSave
}

// Title returns the trimmed title
func (m CardFormModel) Title() string {
	return strings.TrimSpace(m.title.Value())
}

func (m CardFormModel) Description() string {
	return m.description.Value()
}

func (m CardFormModel) View() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render("Edit Card"))
	s.WriteString("\n\n")
	s.WriteString(m.styles.columnEditorPrompt.Render("Title"))
	s.WriteString("\n")
	s.WriteString(m.title.View())
	s.WriteString("\n\n")
	s.WriteString(m.styles.columnEditorPrompt.Render("Description"))
	s.WriteString("\n")
	s.WriteString(m.description.View())
	s.WriteString("\n\n")

	if m.err != "" {
		s.WriteString(m.styles.Error.Render(m.err))
		s.WriteString("\n")
	}
	s.WriteString(m.styles.ModalHelp.Render("tab: switch field • enter: save title • ctrl+s: save • esc: cancel"))

	return m.styles.detailBox.Render(s.String())
}
