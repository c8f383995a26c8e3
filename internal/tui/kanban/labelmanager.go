package kanban

import (
	"errors"
	"fmt"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type labelManagerMode int

const (
	labelManagerModeNormal labelManagerMode = iota
	labelManagerModeAdd
	labelManagerModeRename
	labelManagerModeColor
	labelManagerModeConfirmDelete
)

// LabelManagerModel creates, renames, recolors and deletes the shared
// labels. Changes are committed as they are made.
type LabelManagerModel struct {
	session   *app.Session
	styles    boardStyles
	cursorPos int
	mode      labelManagerMode
	textInput textinput.Model
	message   string
	err       error
}

func NewLabelManagerModel(session *app.Session, styles boardStyles) LabelManagerModel {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 40

	return LabelManagerModel{
		session:   session,
		styles:    styles,
		textInput: ti,
	}
}

func (m LabelManagerModel) labels() []models.Label {
	return m.session.Data().Labels
}

func (m LabelManagerModel) current() (models.Label, bool) {
	labels := m.labels()
	if m.cursorPos >= len(labels) {
		return models.Label{}, false
	}
	return labels[m.cursorPos], true
}

// Update handles label manager events
func (m LabelManagerModel) Update(msg tea.KeyMsg) (LabelManagerModel, tea.Cmd, pickerResult) {
	m.message = ""
	m.err = nil

	switch m.mode {
	case labelManagerModeAdd, labelManagerModeRename, labelManagerModeColor:
		return m.updateText(msg)
	case labelManagerModeConfirmDelete:
		return m.updateConfirmDelete(msg), nil, pickerOpen
	}

	switch msg.String() {
	case "esc", "q", "enter":
		return m, nil, pickerCancel

	case "j", "down":
		if m.cursorPos < len(m.labels())-1 {
			m.cursorPos++
		}

	case "k", "up":
		if m.cursorPos > 0 {
			m.cursorPos--
		}

	case "n":
		return m.openInput(labelManagerModeAdd, "Enter label name...", "")

	case "r":
		if label, ok := m.current(); ok {
			return m.openInput(labelManagerModeRename, "Enter label name...", label.Name)
		}

	case "c":
		if label, ok := m.current(); ok {
			return m.openInput(labelManagerModeColor, "#rrggbb", label.Color)
		}

	case "d":
		if _, ok := m.current(); ok {
			m.mode = labelManagerModeConfirmDelete
		}
	}

	return m, nil, pickerOpen
}

func (m LabelManagerModel) openInput(mode labelManagerMode, placeholder, value string) (LabelManagerModel, tea.Cmd, pickerResult) {
	m.mode = mode
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
	return m, textinput.Blink, pickerOpen
}

func (m LabelManagerModel) updateText(msg tea.KeyMsg) (LabelManagerModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "esc":
		m.textInput.Blur()
		m.mode = labelManagerModeNormal
		return m, nil, pickerOpen

	case "enter":
		value := m.textInput.Value()
		mode := m.mode
		m.textInput.Blur()
		m.mode = labelManagerModeNormal
		m.commitText(mode, value)
		return m, nil, pickerOpen
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, pickerOpen
}

func (m *LabelManagerModel) commitText(mode labelManagerMode, value string) {
	e := m.session.Engine()

	if mode == labelManagerModeAdd {
		err := m.session.Apply("add label", func(data models.KanbanData) (models.KanbanData, error) {
			return e.AddLabel(data, sanitizeLabel(value), "")
		})
		if err == nil {
			m.cursorPos = len(m.labels()) - 1
		}
		m.report(err, "Label created")
		return
	}

	label, ok := m.current()
	if !ok {
		return
	}
	name, color, success := label.Name, label.Color, "Label renamed"
	if mode == labelManagerModeColor {
		color = strings.TrimSpace(value)
		success = "Label recolored"
		if operations.NormalizeColor(color) != strings.ToLower(color) {
			m.err = fmt.Errorf("invalid color %q (want #rgb or #rrggbb)", color)
			return
		}
	} else {
		name = sanitizeLabel(value)
	}

	err := m.session.Apply("update label", func(data models.KanbanData) (models.KanbanData, error) {
		return e.UpdateLabel(data, label.ID, name, color)
	})
	m.report(err, success)
}

func (m LabelManagerModel) updateConfirmDelete(msg tea.KeyMsg) LabelManagerModel {
	switch msg.String() {
	case "y", "Y":
		m.mode = labelManagerModeNormal
		label, ok := m.current()
		if !ok {
			return m
		}
		e := m.session.Engine()
		err := m.session.Apply("delete label", func(data models.KanbanData) (models.KanbanData, error) {
			return e.DeleteLabel(data, label.ID)
		})
		if err == nil && m.cursorPos >= len(m.labels()) && m.cursorPos > 0 {
			m.cursorPos--
		}
		m.report(err, "Label deleted")

	case "n", "N", "esc":
		m.mode = labelManagerModeNormal
	}
	return m
}

func (m *LabelManagerModel) report(err error, success string) {
	switch {
	case err == nil:
		m.message = success
	case errors.Is(err, operations.ErrUnchanged):
		m.message = "Nothing to do"
	default:
		m.err = err
	}
}

// usage counts the cards carrying labelID across every board
func usage(data models.KanbanData, labelID string) int {
	n := 0
	for _, board := range data.Boards {
		for _, col := range board.Columns {
			for _, card := range col.Cards {
				if card.HasLabel(labelID) {
					n++
				}
			}
		}
	}
	return n
}

func (m LabelManagerModel) View() string {
	var s strings.Builder
	data := m.session.Data()

	s.WriteString(m.styles.ModalTitle.Render("Labels"))
	s.WriteString("\n\n")

	switch m.mode {
	case labelManagerModeAdd:
		s.WriteString(m.styles.columnEditorPrompt.Render("New label: "))
	case labelManagerModeRename:
		s.WriteString(m.styles.columnEditorPrompt.Render("Rename: "))
	case labelManagerModeColor:
		s.WriteString(m.styles.columnEditorPrompt.Render("Color: "))
	}
	if m.mode != labelManagerModeNormal && m.mode != labelManagerModeConfirmDelete {
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	}

	if len(data.Labels) == 0 {
		s.WriteString(m.styles.pickerItem.Render("No labels yet. Press 'n' to create one."))
		s.WriteString("\n")
	}
	for i, label := range data.Labels {
		line := fmt.Sprintf("%s  %s (%s)", m.styles.labelBadge(label), label.Color, plural(usage(data, label.ID), "card"))

		style := m.styles.pickerItem
		if i == m.cursorPos {
			style = m.styles.pickerItemHighlight
		}
		s.WriteString(style.Render(line))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.message != "" {
		s.WriteString(m.styles.Ok.Render(m.message))
		s.WriteString("\n")
	}

	switch m.mode {
	case labelManagerModeAdd, labelManagerModeRename, labelManagerModeColor:
		s.WriteString(m.styles.ModalHelp.Render("enter: confirm • esc: cancel"))
	case labelManagerModeConfirmDelete:
		prompt := "Delete this label? (y/n)"
		if label, ok := m.current(); ok {
			prompt = fmt.Sprintf("Delete label %q from every card? (y/n)", label.Name)
		}
		s.WriteString(m.styles.Warn.Render(prompt))
	default:
		s.WriteString(m.styles.ModalHelp.Render("jk: navigate • n: new • r: rename • c: color • d: delete • esc: close"))
	}

	return m.styles.pickerBox.Render(s.String())
}
