package kanban

import (
	"errors"
	"fmt"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/dragdrop"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type columnEditorMode int

const (
	columnEditorModeNormal columnEditorMode = iota
	columnEditorModeRename
	columnEditorModeAdd
	columnEditorModeConfirmDelete
)

// ColumnEditorModel edits the columns of one board. Every change is
// committed through the session as soon as it is made.
type ColumnEditorModel struct {
	session      *app.Session
	styles       boardStyles
	boardID      string
	cursorPos    int
	mode         columnEditorMode
	textInput    textinput.Model
	message      string
	err          error
	insertBefore bool // Track if inserting before vs after cursor
}

// NewColumnEditorModel opens the editor on boardID with the cursor on column cursor
func NewColumnEditorModel(session *app.Session, boardID string, cursor int, styles boardStyles) ColumnEditorModel {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 40

	return ColumnEditorModel{
		session:   session,
		styles:    styles,
		boardID:   boardID,
		cursorPos: max(0, cursor),
		textInput: ti,
	}
}

func (m ColumnEditorModel) columns() []models.Column {
	board, _ := m.session.Data().FindBoard(m.boardID)
	return board.Columns
}

// Update handles column editor events
func (m ColumnEditorModel) Update(msg tea.KeyMsg) (ColumnEditorModel, tea.Cmd, pickerResult) {
	m.message = ""
	m.err = nil

	switch m.mode {
	case columnEditorModeRename:
		return m.updateRename(msg)
	case columnEditorModeAdd:
		return m.updateAdd(msg)
	case columnEditorModeConfirmDelete:
		return m.updateConfirmDelete(msg), nil, pickerOpen
	}
	return m.updateNormal(msg)
}

func (m ColumnEditorModel) updateNormal(msg tea.KeyMsg) (ColumnEditorModel, tea.Cmd, pickerResult) {
	columns := m.columns()

	switch msg.String() {
	case "enter":
		return m, nil, pickerSave

	case "esc", "q":
		return m, nil, pickerCancel

	case "j", "down":
		if m.cursorPos < len(columns)-1 {
			m.cursorPos++
		}

	case "k", "up":
		if m.cursorPos > 0 {
			m.cursorPos--
		}

	case "r":
		if m.cursorPos < len(columns) {
			return m.openInput(columnEditorModeRename, columns[m.cursorPos].Title)
		}

	case "o":
		m.insertBefore = false
		return m.openInput(columnEditorModeAdd, "")

	case "O":
		m.insertBefore = true
		return m.openInput(columnEditorModeAdd, "")

	case "d":
		if m.cursorPos < len(columns) {
			m.mode = columnEditorModeConfirmDelete
		}

	case "J":
		if m.cursorPos < len(columns)-1 {
			m.moveColumn(m.cursorPos + 1)
		}

	case "K":
		if m.cursorPos > 0 {
			m.moveColumn(m.cursorPos - 1)
		}
	}

	return m, nil, pickerOpen
}

func (m ColumnEditorModel) openInput(mode columnEditorMode, value string) (ColumnEditorModel, tea.Cmd, pickerResult) {
	m.textInput.SetValue(value)
	m.textInput.Focus()
	m.mode = mode
	return m, textinput.Blink, pickerOpen
}

func (m *ColumnEditorModel) closeInput() {
	m.textInput.Blur()
	m.mode = columnEditorModeNormal
}

// moveColumn drops the column under the cursor at index to
func (m *ColumnEditorModel) moveColumn(to int) {
	_, err := m.session.Dispatch(app.Drop{Result: dragdrop.ColumnDrop(m.boardID, m.cursorPos, to)})
	if err != nil {
		m.err = err
		return
	}
	m.cursorPos = to
}

func (m ColumnEditorModel) updateRename(msg tea.KeyMsg) (ColumnEditorModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "enter":
		columns := m.columns()
		m.closeInput()
		if m.cursorPos >= len(columns) {
			return m, nil, pickerOpen
		}
		columnID := columns[m.cursorPos].ID
		title := m.textInput.Value()
		e := m.session.Engine()
		err := m.session.Apply("rename column", func(data models.KanbanData) (models.KanbanData, error) {
			return e.RenameColumn(data, m.boardID, columnID, title)
		})
		m.report(err, "Column renamed")
		return m, nil, pickerOpen

	case "esc":
		m.closeInput()
		return m, nil, pickerOpen
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, pickerOpen
}

func (m ColumnEditorModel) updateAdd(msg tea.KeyMsg) (ColumnEditorModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "enter":
		m.closeInput()

		insertPos := m.cursorPos + 1
		if m.insertBefore {
			insertPos = m.cursorPos
		}
		insertPos = min(insertPos, len(m.columns()))

		title := m.textInput.Value()
		e := m.session.Engine()
		err := m.session.Apply("add column", func(data models.KanbanData) (models.KanbanData, error) {
			next, err := e.AddColumn(data, m.boardID, title)
			if err != nil {
				return data, err
			}
			board, _ := next.FindBoard(m.boardID)
			last := len(board.Columns) - 1
			if insertPos == last {
				return next, nil
			}
			return dragdrop.Resolve(e, next, dragdrop.ColumnDrop(m.boardID, last, insertPos))
		})
		if err == nil {
			m.cursorPos = insertPos
		}
		m.report(err, "Column added")
		return m, nil, pickerOpen

	case "esc":
		m.closeInput()
		return m, nil, pickerOpen
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, pickerOpen
}

func (m ColumnEditorModel) updateConfirmDelete(msg tea.KeyMsg) ColumnEditorModel {
	switch msg.String() {
	case "y", "Y":
		m.mode = columnEditorModeNormal
		columns := m.columns()
		if m.cursorPos >= len(columns) {
			return m
		}
		columnID := columns[m.cursorPos].ID
		e := m.session.Engine()
		err := m.session.Apply("delete column", func(data models.KanbanData) (models.KanbanData, error) {
			return e.DeleteColumn(data, m.boardID, columnID)
		})
		if err == nil && m.cursorPos >= len(columns)-1 && m.cursorPos > 0 {
			m.cursorPos--
		}
		m.report(err, "Column deleted")

	case "n", "N", "esc":
		m.mode = columnEditorModeNormal
	}
	return m
}

func (m *ColumnEditorModel) report(err error, success string) {
	switch {
	case err == nil:
		m.message = success
	case errors.Is(err, operations.ErrUnchanged):
		m.message = "Nothing to do"
	default:
		m.err = err
	}
}

// View renders the column editor
func (m ColumnEditorModel) View() string {
	var s strings.Builder
	columns := m.columns()

	s.WriteString(m.styles.ModalTitle.Render("Column Editor"))
	s.WriteString("\n\n")

	switch m.mode {
	case columnEditorModeRename:
		s.WriteString(m.styles.columnEditorPrompt.Render("Rename: "))
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	case columnEditorModeAdd:
		s.WriteString(m.styles.columnEditorPrompt.Render("New column: "))
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	}

	if len(columns) == 0 {
		s.WriteString(m.styles.pickerItem.Render("No columns. Press 'o' to add one."))
		s.WriteString("\n")
	}
	for i, col := range columns {
		line := fmt.Sprintf("%d. %s (%s)", i+1, col.Title, plural(len(col.Cards), "card"))

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
	case columnEditorModeRename, columnEditorModeAdd:
		s.WriteString(m.styles.ModalHelp.Render("enter: confirm • esc: cancel"))
	case columnEditorModeConfirmDelete:
		prompt := "Delete this column? (y/n)"
		if m.cursorPos < len(columns) {
			if n := len(columns[m.cursorPos].Cards); n > 0 {
				prompt = fmt.Sprintf("Delete this column and its %s? (y/n)", plural(n, "card"))
			}
		}
		s.WriteString(m.styles.Warn.Render(prompt))
	default:
		s.WriteString(m.styles.ModalHelp.Render("jk: navigate • r: rename • o/O: add below/above • d: delete • JK: reorder • esc: done"))
	}

	return m.styles.pickerBox.Render(s.String())
}
