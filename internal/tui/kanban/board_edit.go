package kanban

import (
	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// selectedCardForEdit resolves the card under the cursor for an overlay
func (m *BoardModel) selectedCardForEdit() (models.Card, bool) {
	m.message = ""
	m.err = nil
	ref, ok := m.selectedRef()
	if !ok {
		return models.Card{}, false
	}
	_, _, card, ok := m.data.ResolveCard(ref)
	if !ok {
		return models.Card{}, false
	}
	m.editRef = ref
	return card, true
}

// editCard applies change to the stored card behind ref as one update
func (m BoardModel) editCard(op string, ref models.CardRef, change func(*models.Card), success string) BoardModel {
	e := m.session.Engine()
	err := m.session.Apply(op, func(data models.KanbanData) (models.KanbanData, error) {
		_, _, card, ok := data.ResolveCard(ref)
		if !ok {
			return data, operations.ErrCardNotFound
		}
		change(&card)
		return e.UpdateCard(data, ref, card)
	})
	m.reload()
	m.focusCard(ref.CardID)
	m.report(err, success)
	return m
}

func (m BoardModel) openLabels() BoardModel {
	card, ok := m.selectedCardForEdit()
	if !ok {
		return m
	}
	m.labelPicker = NewLabelPickerModel(m.data, m.editRef, card, m.styles)
	m.mode = boardModeLabels
	return m
}

func (m BoardModel) updateLabels(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	picker, cmd, result := m.labelPicker.Update(msg)
	m.labelPicker = picker

	switch result {
	case pickerCancel:
		m.mode = boardModeNormal
	case pickerSave:
		m.mode = boardModeNormal
		return m.saveLabels(m.editRef, picker.SelectedNames()), nil
	}
	return m, cmd
}

// saveLabels sets the card's labels by name, creating the missing ones in
// the same commit
func (m BoardModel) saveLabels(ref models.CardRef, names []string) BoardModel {
	e := m.session.Engine()
	err := m.session.Apply("labels", func(data models.KanbanData) (models.KanbanData, error) {
		next := data
		ids := make([]string, 0, len(names))
		for _, name := range names {
			var id string
			var err error
			next, id, err = app.EnsureLabel(e, next, name)
			if err != nil {
				return data, err
			}
			ids = append(ids, id)
		}

		_, _, card, ok := next.ResolveCard(ref)
		if !ok {
			return data, operations.ErrCardNotFound
		}
		card.Labels = ids
		next, err := e.UpdateCard(next, ref, card)
		if err != nil {
			return data, err
		}
		return next, nil
	})
	m.reload()
	m.focusCard(ref.CardID)
	m.report(err, "Labels updated")
	return m
}

func (m BoardModel) openDue() BoardModel {
	card, ok := m.selectedCardForEdit()
	if !ok {
		return m
	}
	m.datePicker = NewDatePickerModel(card.DueDate, m.now(), "Due Date: "+card.Title, m.styles)
	m.mode = boardModeDue
	return m
}

func (m BoardModel) updateDue(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	picker, cmd, result := m.datePicker.Update(msg)
	m.datePicker = picker

	switch result {
	case pickerCancel:
		m.mode = boardModeNormal
	case pickerSave:
		m.mode = boardModeNormal
		due := picker.GetDate()
		success := "Due date cleared"
		if due != nil {
			success = "Due date set"
		}
		return m.editCard("due date", m.editRef, func(card *models.Card) {
			card.DueDate = due
		}, success), nil
	}
	return m, cmd
}

func (m BoardModel) openPriority() BoardModel {
	card, ok := m.selectedCardForEdit()
	if !ok {
		return m
	}
	m.priorityInput = NewPriorityInputModel(card.Priority, m.styles)
	m.mode = boardModePriority
	return m
}

func (m BoardModel) updatePriority(msg tea.KeyMsg) BoardModel {
	input, result := m.priorityInput.Update(msg)
	m.priorityInput = input

	switch result {
	case pickerCancel:
		m.mode = boardModeNormal
	case pickerSave:
		m.mode = boardModeNormal
		priority := input.GetPriority()
		return m.editCard("priority", m.editRef, func(card *models.Card) {
			card.Priority = priority
		}, "Priority set to "+string(priority))
	}
	return m
}

func (m BoardModel) openColumns() BoardModel {
	m.message = ""
	m.err = nil
	m.columnEditor = NewColumnEditorModel(m.session, m.board.ID, m.selectedCol, m.styles)
	m.mode = boardModeColumns
	return m
}

func (m BoardModel) updateColumns(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	editor, cmd, result := m.columnEditor.Update(msg)
	m.columnEditor = editor

	if result != pickerOpen {
		m.mode = boardModeNormal
		m.reload()
		m.selectColumn(min(editor.cursorPos, len(m.board.Columns)-1))
	}
	return m, cmd
}

func (m BoardModel) openBoards() BoardModel {
	m.message = ""
	m.err = nil
	m.boardPicker = NewPickerModel(m.session, m.styles)
	m.mode = boardModeBoards
	return m
}

func (m BoardModel) updateBoards(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	before := m.board.ID
	picker, cmd, result := m.boardPicker.Update(msg)
	m.boardPicker = picker

	if result != pickerOpen {
		m.mode = boardModeNormal
		m.reload()
		if m.board.ID != before {
			m.resetCursor()
			m.reload()
		}
	}
	return m, cmd
}


func (m BoardModel) openCardForm() (BoardModel, tea.Cmd) {
	card, ok := m.selectedCardForEdit()
	if !ok {
		return m, nil
	}
	m.cardForm = NewCardFormModel(card, m.styles)
	m.mode = boardModeCardForm
	return m, textinput.Blink
}

func (m BoardModel) updateCardForm(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	form, cmd, result := m.cardForm.Update(msg)
	m.cardForm = form

	switch result {
	case pickerCancel:
		m.mode = boardModeNormal
	case pickerSave:
		m.mode = boardModeNormal
		title, description := form.Title(), form.Description()
		return m.editCard("edit card", m.editRef, func(card *models.Card) {
			card.Title = title
			card.Description = description
		}, "Card updated"), nil
	}
	return m, cmd
}

func (m BoardModel) openLabelManager() BoardModel {
	m.message = ""
	m.err = nil
	m.labelManager = NewLabelManagerModel(m.session, m.styles)
	m.mode = boardModeLabelManager
	return m
}

func (m BoardModel) updateLabelManager(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	manager, cmd, result := m.labelManager.Update(msg)
	m.labelManager = manager

	if result != pickerOpen {
		m.mode = boardModeNormal
		m.reload()
	}
	return m, cmd
}

func (m BoardModel) openLabelFilter() BoardModel {
	m.message = ""
	m.err = nil
	m.labelFilter = NewLabelFilterModel(m.data, m.data.FilterFor(m.board.ID), m.styles)
	m.mode = boardModeLabelFilter
	return m
}

func (m BoardModel) updateLabelFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	picker, cmd, result := m.labelFilter.Update(msg)
	m.labelFilter = picker

	switch result {
	case pickerCancel:
		m.mode = boardModeNormal
	case pickerSave:
		m.mode = boardModeNormal
		ids := picker.SelectedIDs()
		return m.cycleFilter(func(opts *models.FilterOptions) {
			opts.LabelIDs = ids
		}), nil
	}
	return m, cmd
}
