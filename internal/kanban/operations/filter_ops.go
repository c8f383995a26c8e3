package operations

import (
	"maps"

	"taskflow/internal/kanban/models"
)

// SetFilter stores the filter criteria for a board. Unknown label ids and
// out-of-range priority or due criteria are dropped.
func (e *Engine) SetFilter(data models.KanbanData, boardID string, opts models.FilterOptions) (models.KanbanData, error) {
	if data.BoardIndex(boardID) < 0 {
		return data, ErrBoardNotFound
	}

	opts.LabelIDs = knownLabels(data, opts.LabelIDs)
	if opts.Priority != nil && !opts.Priority.Valid() {
		opts.Priority = nil
	}
	if opts.DueDateFilter != nil && !opts.DueDateFilter.Valid() {
		opts.DueDateFilter = nil
	}

	filters := maps.Clone(data.Filters)
	if filters == nil {
		filters = map[string]models.FilterOptions{}
	}
	filters[boardID] = opts
	data.Filters = filters
	return data, nil
}

// ClearFilter removes a board's filter criteria
func (e *Engine) ClearFilter(data models.KanbanData, boardID string) (models.KanbanData, error) {
	if data.BoardIndex(boardID) < 0 {
		return data, ErrBoardNotFound
	}
	if _, ok := data.Filters[boardID]; !ok {
		return data, ErrUnchanged
	}

	data.Filters = maps.Clone(data.Filters)
	delete(data.Filters, boardID)
	return data, nil
}
