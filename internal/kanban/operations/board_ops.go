package operations

import (
	"maps"
	"slices"
	"strings"

	"taskflow/internal/kanban/models"
)

// DefaultColumnTitles are the columns every new board starts with
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// AddBoard appends a board with the default columns and makes it active
func (e *Engine) AddBoard(data models.KanbanData, title string) (models.KanbanData, error) {
	return e.AddBoardWithColumns(data, title, DefaultColumnTitles)
}

// AddBoardWithColumns appends a board with the given column titles and makes
// it active. Every column title must be non-empty.
func (e *Engine) AddBoardWithColumns(data models.KanbanData, title string, columnTitles []string) (models.KanbanData, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return data, ErrEmptyTitle
	}

	board := models.Board{
		ID:      e.newID("board"),
		Title:   title,
		Columns: make([]models.Column, 0, len(columnTitles)),
	}
	for _, colTitle := range columnTitles {
		colTitle = strings.TrimSpace(colTitle)
		if colTitle == "" {
			return data, ErrEmptyTitle
		}
		board.Columns = append(board.Columns, models.Column{
			ID:    e.newID("column"),
			Title: colTitle,
			Cards: []models.Card{},
		})
	}

	data.Boards = append(slices.Clone(data.Boards), board)
	data.ActiveBoard = board.ID
	return data, nil
}

// RenameBoard changes a board's title
func (e *Engine) RenameBoard(data models.KanbanData, boardID, title string) (models.KanbanData, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return data, ErrEmptyTitle
	}

	return editBoard(data, boardID, func(board models.Board) (models.Board, error) {
		if board.Title == title {
			return board, ErrUnchanged
		}
		board.Title = title
		return board, nil
	})
}

// DeleteBoard removes a board and its stored filter. If it was active, the
// neighbouring board becomes active. The last board cannot be deleted.
func (e *Engine) DeleteBoard(data models.KanbanData, boardID string) (models.KanbanData, error) {
	i := data.BoardIndex(boardID)
	if i < 0 {
		return data, ErrBoardNotFound
	}
	if len(data.Boards) <= 1 {
		return data, ErrLastBoard
	}

	boards := slices.Delete(slices.Clone(data.Boards), i, i+1)
	if data.ActiveBoard == boardID {
		data.ActiveBoard = boards[min(i, len(boards)-1)].ID
	}
	data.Boards = boards

	if _, ok := data.Filters[boardID]; ok {
		data.Filters = maps.Clone(data.Filters)
		delete(data.Filters, boardID)
	}
	return data, nil
}

// SetActiveBoard switches the active board
func (e *Engine) SetActiveBoard(data models.KanbanData, boardID string) (models.KanbanData, error) {
	if data.BoardIndex(boardID) < 0 {
		return data, ErrBoardNotFound
	}
	if data.ActiveBoard == boardID {
		return data, ErrUnchanged
	}
	data.ActiveBoard = boardID
	return data, nil
}

// NextBoard activates the board after the active one, wrapping around
func (e *Engine) NextBoard(data models.KanbanData) (models.KanbanData, error) {
	return cycleBoard(data, 1)
}

// PrevBoard activates the board before the active one, wrapping around
func (e *Engine) PrevBoard(data models.KanbanData) (models.KanbanData, error) {
	return cycleBoard(data, -1)
}

func cycleBoard(data models.KanbanData, step int) (models.KanbanData, error) {
	current := data.ActiveBoardIndex()
	if current < 0 {
		return data, ErrBoardNotFound
	}
	if len(data.Boards) <= 1 {
		return data, ErrUnchanged
	}

	n := len(data.Boards)
	data.ActiveBoard = data.Boards[(current+step+n)%n].ID
	return data, nil
}

// AddUser registers a user that cards can be assigned to
func (e *Engine) AddUser(data models.KanbanData, name string) (models.KanbanData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return data, ErrEmptyTitle
	}

	user := models.User{ID: e.newID("user"), Name: name}
	data.Users = append(slices.Clone(data.Users), user)
	return data, nil
}
