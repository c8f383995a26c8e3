package cli

import (
	"fmt"
	"strings"
	"taskflow/internal/kanban/models"
)

// shortID drops the kind prefix of an id and keeps at most eight characters
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 && i < len(id)-1 {
		id = id[i+1:]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// matchesID accepts the full id, the short id, or a prefix of at least four
// characters of either
func matchesID(id, ref string) bool {
	if id == ref || shortID(id) == ref {
		return true
	}
	if len(ref) < 4 {
		return false
	}
	rest := id
	if i := strings.IndexByte(id, '-'); i >= 0 {
		rest = id[i+1:]
	}
	return strings.HasPrefix(id, ref) || strings.HasPrefix(rest, ref)
}

func ambiguous(kind, ref string, n int) error {
	return fmt.Errorf("multiple %ss match %q (%d matches), please be more specific", kind, ref, n)
}

func findBoard(data models.KanbanData, ref string) (models.Board, error) {
	if ref == "" {
		board, ok := data.GetActiveBoard()
		if !ok {
			return models.Board{}, fmt.Errorf("no active board")
		}
		return board, nil
	}

	var matches []models.Board
	for _, b := range data.Boards {
		if matchesID(b.ID, ref) || strings.EqualFold(b.Title, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return models.Board{}, fmt.Errorf("no board found matching: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Board{}, ambiguous("board", ref, len(matches))
	}
}

func findColumn(board models.Board, ref string) (models.Column, error) {
	if col, ok := board.FindColumnByTitle(ref); ok {
		return col, nil
	}

	var matches []models.Column
	for _, c := range board.Columns {
		if matchesID(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return models.Column{}, fmt.Errorf("no column found matching: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Column{}, ambiguous("column", ref, len(matches))
	}
}

// findCard looks for a card anywhere on the board
func findCard(board models.Board, ref string) (models.CardRef, models.Card, error) {
	var (
		refs  []models.CardRef
		cards []models.Card
	)
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			if matchesID(card.ID, ref) {
				refs = append(refs, models.CardRef{BoardID: board.ID, ColumnID: col.ID, CardID: card.ID})
				cards = append(cards, card)
			}
		}
	}
	switch len(refs) {
	case 0:
		return models.CardRef{}, models.Card{}, fmt.Errorf("no card found with ID: %s", ref)
	case 1:
		return refs[0], cards[0], nil
	default:
		return models.CardRef{}, models.Card{}, ambiguous("card", ref, len(refs))
	}
}

func findLabel(data models.KanbanData, ref string) (models.Label, error) {
	for _, l := range data.Labels {
		if l.ID == ref || strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	return models.Label{}, fmt.Errorf("no label found matching: %s", ref)
}

// labelIDs resolves a list of label names or ids
func labelIDs(data models.KanbanData, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		l, err := findLabel(data, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func labelNames(data models.KanbanData, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := data.FindLabel(id); ok {
			names = append(names, l.Name)
		}
	}
	return names
}
