package filter

import (
	"strings"
	"time"

	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/models"
)

// FilterCards returns the cards that pass every active criterion, in input order.
// With no active criterion the input slice itself is returned.
func FilterCards(cards []models.Card, opts models.FilterOptions, now time.Time) []models.Card {
	if !opts.IsActive() {
		return cards
	}

	filtered := make([]models.Card, 0, len(cards))
	for _, card := range cards {
		if Matches(card, opts, now) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}

// Matches reports whether a single card passes all active criteria
func Matches(card models.Card, opts models.FilterOptions, now time.Time) bool {
	if len(opts.LabelIDs) > 0 && !card.HasAnyLabel(opts.LabelIDs) {
		return false
	}
	if opts.Priority != nil && card.Priority != *opts.Priority {
		return false
	}
	if opts.DueDateFilter != nil && !dates.Matches(card.DueDate, *opts.DueDateFilter, now) {
		return false
	}
	return true
}

// FilterBoard returns a view of the board whose columns only hold matching cards.
// The stored board is left untouched.
func FilterBoard(board models.Board, opts models.FilterOptions, now time.Time) models.Board {
	if !opts.IsActive() {
		return board
	}

	view := board
	view.Columns = make([]models.Column, len(board.Columns))
	for i, col := range board.Columns {
		col.Cards = FilterCards(col.Cards, opts, now)
		view.Columns[i] = col
	}
	return view
}

// Describe returns a short summary of the active criteria, using label names
func Describe(opts models.FilterOptions, labels []models.Label) string {
	if !opts.IsActive() {
		return "none"
	}

	var parts []string
	if len(opts.LabelIDs) > 0 {
		names := make([]string, len(opts.LabelIDs))
		for i, id := range opts.LabelIDs {
			names[i] = id
			for _, l := range labels {
				if l.ID == id {
					names[i] = l.Name
					break
				}
			}
		}
		parts = append(parts, "labels="+strings.Join(names, "|"))
	}
	if opts.Priority != nil {
		parts = append(parts, "priority="+string(*opts.Priority))
	}
	if opts.DueDateFilter != nil {
		parts = append(parts, "due="+string(*opts.DueDateFilter))
	}
	return strings.Join(parts, " ")
}
