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
	"github.com/sahilm/fuzzy"
)

type pickerMode int

const (
	modeList pickerMode = iota
	modeSearch
	modeCreate
	modeRename
	modeConfirmDelete
)

// PickerModel lists every board. Choosing one makes it active; boards can
// also be created, renamed and deleted from here.
type PickerModel struct {
	session     *app.Session
	styles      boardStyles
	boards      []models.Board
	filtered    []int // indices into boards
	selected    int
	mode        pickerMode
	textInput   textinput.Model
	searchQuery string
	err         error
}

func NewPickerModel(session *app.Session, styles boardStyles) PickerModel {
	ti := textinput.New()
	ti.CharLimit = 50
	ti.Width = 40

	m := PickerModel{
		session:   session,
		styles:    styles,
		textInput: ti,
	}
	m.reload()
	if i := session.Data().ActiveBoardIndex(); i >= 0 {
		m.selected = i
	}
	return m
}

func (m *PickerModel) reload() {
	m.boards = m.session.Data().Boards
	m.applyFilter()
}

func (m *PickerModel) applyFilter() {
	if m.searchQuery == "" {
		m.filtered = make([]int, len(m.boards))
		for i := range m.boards {
			m.filtered[i] = i
		}
	} else {
		titles := make([]string, len(m.boards))
		for i, b := range m.boards {
			titles[i] = b.Title
		}
		matches := fuzzy.Find(m.searchQuery, titles)
		m.filtered = make([]int, len(matches))
		for i, match := range matches {
			m.filtered[i] = match.Index
		}
	}
	if m.selected >= len(m.filtered) {
		m.selected = max(0, len(m.filtered)-1)
	}
}

func (m PickerModel) current() (models.Board, bool) {
	if m.selected >= len(m.filtered) {
		return models.Board{}, false
	}
	return m.boards[m.filtered[m.selected]], true
}

// Update handles picker events
func (m PickerModel) Update(msg tea.KeyMsg) (PickerModel, tea.Cmd, pickerResult) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeCreate, modeRename:
		return m.updateText(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg), nil, pickerOpen
	}
	return m.updateList(msg)
}

func (m PickerModel) updateList(msg tea.KeyMsg) (PickerModel, tea.Cmd, pickerResult) {
	m.err = nil

	switch msg.String() {
	case "esc", "q":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.applyFilter()
			return m, nil, pickerOpen
		}
		return m, nil, pickerCancel

	case "j", "down":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "enter":
		board, ok := m.current()
		if !ok {
			return m, nil, pickerOpen
		}
		e := m.session.Engine()
		err := m.session.Apply("switch board", func(data models.KanbanData) (models.KanbanData, error) {
			if data.ActiveBoard == board.ID {
				return data, nil
			}
			return e.SetActiveBoard(data, board.ID)
		})
		if err != nil {
			m.err = err
			return m, nil, pickerOpen
		}
		return m, nil, pickerSave

	case "/":
		m.mode = modeSearch
		m.textInput.Placeholder = "Filter boards..."
		m.textInput.SetValue(m.searchQuery)
		m.textInput.Focus()
		return m, textinput.Blink, pickerOpen

	case "n":
		return m.openInput(modeCreate, "Enter board name...", "")

	case "r":
		if board, ok := m.current(); ok {
			return m.openInput(modeRename, "Enter board name...", board.Title)
		}

	case "d":
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	}

	return m, nil, pickerOpen
}

func (m PickerModel) openInput(mode pickerMode, placeholder, value string) (PickerModel, tea.Cmd, pickerResult) {
	m.mode = mode
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
	return m, textinput.Blink, pickerOpen
}

func (m PickerModel) updateSearch(msg tea.KeyMsg) (PickerModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "esc":
		m.searchQuery = ""
		m.applyFilter()
		m.textInput.Blur()
		m.mode = modeList
		return m, nil, pickerOpen
	case "enter":
		m.textInput.Blur()
		m.mode = modeList
		return m, nil, pickerOpen
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.searchQuery = m.textInput.Value()
	m.selected = 0
	m.applyFilter()
	return m, cmd, pickerOpen
}

func (m PickerModel) updateText(msg tea.KeyMsg) (PickerModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "esc":
		m.textInput.Blur()
		m.mode = modeList
		return m, nil, pickerOpen

	case "enter":
		title := m.textInput.Value()
		mode := m.mode
		m.textInput.Blur()
		m.mode = modeList

		if mode == modeCreate {
			_, err := m.session.Dispatch(app.NewBoard{Title: title})
			if err != nil {
				m.err = err
				return m, nil, pickerOpen
			}
			return m, nil, pickerSave
		}

		board, ok := m.current()
		if !ok {
			return m, nil, pickerOpen
		}
		e := m.session.Engine()
		err := m.session.Apply("rename board", func(data models.KanbanData) (models.KanbanData, error) {
			return e.RenameBoard(data, board.ID, title)
		})
		if err != nil && !errors.Is(err, operations.ErrUnchanged) {
			m.err = err
		}
		m.reload()
		return m, nil, pickerOpen
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, pickerOpen
}

func (m PickerModel) updateConfirmDelete(msg tea.KeyMsg) PickerModel {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		board, ok := m.current()
		if !ok {
			return m
		}
		e := m.session.Engine()
		m.err = m.session.Apply("delete board", func(data models.KanbanData) (models.KanbanData, error) {
			return e.DeleteBoard(data, board.ID)
		})
		m.reload()
	case "n", "N", "esc":
		m.mode = modeList
	}
	return m
}

func (m PickerModel) View() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render("Boards"))
	s.WriteString("\n\n")

	switch m.mode {
	case modeSearch:
		s.WriteString(m.styles.columnEditorPrompt.Render("Filter: "))
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	case modeCreate:
		s.WriteString(m.styles.columnEditorPrompt.Render("New board: "))
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	case modeRename:
		s.WriteString(m.styles.columnEditorPrompt.Render("Rename: "))
		s.WriteString(m.textInput.View())
		s.WriteString("\n\n")
	default:
		if m.searchQuery != "" {
			s.WriteString(m.styles.Muted.Render("Filter: " + m.searchQuery))
			s.WriteString("\n\n")
		}
	}

	activeID := m.session.Data().ActiveBoard
	if len(m.filtered) == 0 {
		s.WriteString(m.styles.pickerItem.Render("No matching boards"))
		s.WriteString("\n")
	}
	for i, idx := range m.filtered {
		board := m.boards[idx]
		line := fmt.Sprintf("%s (%d columns, %s)", board.Title, len(board.Columns), plural(board.CardCount(), "card"))
		if board.ID == activeID {
			line += " *"
		}

		style := m.styles.pickerItem
		if i == m.selected {
			style = m.styles.pickerItemHighlight
		}
		s.WriteString(style.Render(line))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	}

	switch m.mode {
	case modeSearch:
		s.WriteString(m.styles.ModalHelp.Render("type to filter • enter: confirm • esc: clear"))
	case modeCreate, modeRename:
		s.WriteString(m.styles.ModalHelp.Render("enter: confirm • esc: cancel"))
	case modeConfirmDelete:
		prompt := "Delete this board? (y/n)"
		if board, ok := m.current(); ok {
			prompt = fmt.Sprintf("Delete board %q and all its cards? (y/n)", board.Title)
		}
		s.WriteString(m.styles.Warn.Render(prompt))
	default:
		s.WriteString(m.styles.ModalHelp.Render("jk: navigate • /: filter • enter: open • n: new • r: rename • d: delete • esc: close"))
	}

	return m.styles.pickerBox.Render(s.String())
}
