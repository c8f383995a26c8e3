package operations

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"taskflow/internal/kanban/models"
)

// DefaultLabelColor is used when a label is given no valid color
const DefaultLabelColor = "#3b82f6"

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeColor returns color if it is a #rgb or #rrggbb hex string,
// otherwise DefaultLabelColor
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if hexColor.MatchString(color) {
		return strings.ToLower(color)
	}
	return DefaultLabelColor
}

// AddLabel appends a new label
func (e *Engine) AddLabel(data models.KanbanData, name, color string) (models.KanbanData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return data, ErrEmptyTitle
	}

	label := models.Label{
		ID:    e.newID("label"),
		Name:  name,
		Color: NormalizeColor(color),
	}
	data.Labels = append(slices.Clone(data.Labels), label)
	return data, nil
}

// UpdateLabel changes a label's name and color
func (e *Engine) UpdateLabel(data models.KanbanData, labelID, name, color string) (models.KanbanData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return data, ErrEmptyTitle
	}

	i := data.LabelIndex(labelID)
	if i < 0 {
		return data, ErrLabelNotFound
	}

	label := models.Label{ID: labelID, Name: name, Color: NormalizeColor(color)}
	if data.Labels[i] == label {
		return data, ErrUnchanged
	}

	data.Labels = slices.Clone(data.Labels)
	data.Labels[i] = label
	return data, nil
}

// DeleteLabel removes a label and every reference to it: from the cards of
// every board and from every board's filter criteria.
func (e *Engine) DeleteLabel(data models.KanbanData, labelID string) (models.KanbanData, error) {
	i := data.LabelIndex(labelID)
	if i < 0 {
		return data, ErrLabelNotFound
	}

	data.Labels = slices.Delete(slices.Clone(data.Labels), i, i+1)

	boards := make([]models.Board, len(data.Boards))
	for bi, board := range data.Boards {
		columns := make([]models.Column, len(board.Columns))
		for ci, col := range board.Columns {
			cards := make([]models.Card, len(col.Cards))
			for ki, card := range col.Cards {
				if card.HasLabel(labelID) {
					card.Labels = without(card.Labels, labelID)
				}
				cards[ki] = card
			}
			col.Cards = cards
			columns[ci] = col
		}
		board.Columns = columns
		boards[bi] = board
	}
	data.Boards = boards

	if len(data.Filters) > 0 {
		filters := maps.Clone(data.Filters)
		for boardID, opts := range filters {
			if slices.Contains(opts.LabelIDs, labelID) {
				opts.LabelIDs = without(opts.LabelIDs, labelID)
				filters[boardID] = opts
			}
		}
		data.Filters = filters
	}
	return data, nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
