package operations

import (
	"slices"
	"strings"

	"taskflow/internal/kanban/models"
)

// AddColumn appends an empty column to a board
func (e *Engine) AddColumn(data models.KanbanData, boardID, title string) (models.KanbanData, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return data, ErrEmptyTitle
	}

	return editBoard(data, boardID, func(board models.Board) (models.Board, error) {
		column := models.Column{
			ID:    e.newID("column"),
			Title: title,
			Cards: []models.Card{},
		}
		board.Columns = append(slices.Clone(board.Columns), column)
		return board, nil
	})
}

// RenameColumn changes a column's title, keeping its id, position and cards
func (e *Engine) RenameColumn(data models.KanbanData, boardID, columnID, title string) (models.KanbanData, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return data, ErrEmptyTitle
	}

	return editColumn(data, boardID, columnID, func(col models.Column) (models.Column, error) {
		if col.Title == title {
			return col, ErrUnchanged
		}
		col.Title = title
		return col, nil
	})
}

// DeleteColumn removes a column together with all of its cards
func (e *Engine) DeleteColumn(data models.KanbanData, boardID, columnID string) (models.KanbanData, error) {
	return editBoard(data, boardID, func(board models.Board) (models.Board, error) {
		i := board.ColumnIndex(columnID)
		if i < 0 {
			return board, ErrColumnNotFound
		}
		board.Columns = slices.Delete(slices.Clone(board.Columns), i, i+1)
		return board, nil
	})
}

// MoveColumn moves a column from one position to another. to is an index
// into the column list after the moving column has been taken out.
func (e *Engine) MoveColumn(data models.KanbanData, boardID string, from, to int) (models.KanbanData, error) {
	return editBoard(data, boardID, func(board models.Board) (models.Board, error) {
		if from == to {
			return board, ErrUnchanged
		}
		columns, err := moveItem(board.Columns, from, to)
		if err != nil {
			return board, err
		}
		board.Columns = columns
		return board, nil
	})
}
