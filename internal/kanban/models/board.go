package models

import "strings"

// KanbanData is the root of the persisted tree
type KanbanData struct {
	Boards      []Board                  `json:"boards" yaml:"boards"`
	ActiveBoard string                   `json:"activeBoard" yaml:"activeBoard"`
	Users       []User                   `json:"users,omitempty" yaml:"users,omitempty"`
	Labels      []Label                  `json:"labels" yaml:"labels"`
	Filters     map[string]FilterOptions `json:"filters" yaml:"filters"`
}

// Board represents a kanban board with its columns and cards
type Board struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Column is an ordered lane of cards
type Column struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Cards []Card `json:"cards" yaml:"cards"`
}

// User is someone cards can be assigned to
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// Label is a named, colored tag attachable to cards
type Label struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// CardRef addresses a card by board, column and card id.
// It is only advisory: resolve it against the current tree before use.
type CardRef struct {
	BoardID  string
	ColumnID string
	CardID   string
}

// DefaultData returns the tree used when nothing has been saved yet
func DefaultData() KanbanData {
	return KanbanData{
		Boards: []Board{
			{
				ID:    "board-1",
				Title: "Main Board",
				Columns: []Column{
					{ID: "column-1", Title: "To Do", Cards: []Card{}},
					{ID: "column-2", Title: "In Progress", Cards: []Card{}},
					{ID: "column-3", Title: "Done", Cards: []Card{}},
				},
			},
		},
		ActiveBoard: "board-1",
		Users:       []User{},
		Labels:      []Label{},
		Filters:     map[string]FilterOptions{},
	}
}

// BoardIndex returns the index of the board with the given id, or -1
func (d KanbanData) BoardIndex(id string) int {
	for i := range d.Boards {
		if d.Boards[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveBoardIndex returns the index of the active board, or -1
func (d KanbanData) ActiveBoardIndex() int {
	return d.BoardIndex(d.ActiveBoard)
}

// GetActiveBoard returns the active board
func (d KanbanData) GetActiveBoard() (Board, bool) {
	i := d.ActiveBoardIndex()
	if i < 0 {
		return Board{}, false
	}
	return d.Boards[i], true
}

// FindBoard returns the board with the given id
func (d KanbanData) FindBoard(id string) (Board, bool) {
	i := d.BoardIndex(id)
	if i < 0 {
		return Board{}, false
	}
	return d.Boards[i], true
}

// LabelIndex returns the index of the label with the given id, or -1
func (d KanbanData) LabelIndex(id string) int {
	for i := range d.Labels {
		if d.Labels[i].ID == id {
			return i
		}
	}
	return -1
}

// FindLabel returns the label with the given id
func (d KanbanData) FindLabel(id string) (Label, bool) {
	i := d.LabelIndex(id)
	if i < 0 {
		return Label{}, false
	}
	return d.Labels[i], true
}

// FindUser returns the user with the given id
func (d KanbanData) FindUser(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FilterFor returns the stored filter criteria for a board
func (d KanbanData) FilterFor(boardID string) FilterOptions {
	if f, ok := d.Filters[boardID]; ok {
		return f
	}
	return FilterOptions{LabelIDs: []string{}}
}

// ResolveCard looks up all three parts of ref in the current tree
func (d KanbanData) ResolveCard(ref CardRef) (Board, Column, Card, bool) {
	board, ok := d.FindBoard(ref.BoardID)
	if !ok {
		return Board{}, Column{}, Card{}, false
	}
	column, ok := board.FindColumn(ref.ColumnID)
	if !ok {
		return Board{}, Column{}, Card{}, false
	}
	card, ok := column.FindCard(ref.CardID)
	if !ok {
		return Board{}, Column{}, Card{}, false
	}
	return board, column, card, true
}

// LocateCard finds where a card currently lives by its id alone
func (d KanbanData) LocateCard(cardID string) (CardRef, bool) {
	for _, b := range d.Boards {
		for _, col := range b.Columns {
			if col.CardIndex(cardID) >= 0 {
				return CardRef{BoardID: b.ID, ColumnID: col.ID, CardID: cardID}, true
			}
		}
	}
	return CardRef{}, false
}

// ColumnIndex returns the index of the column with the given id, or -1
func (b Board) ColumnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

// FindColumn returns the column with the given id
func (b Board) FindColumn(id string) (Column, bool) {
	i := b.ColumnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.Columns[i], true
}

// FindColumnByTitle returns the first column whose title matches (case-insensitive)
func (b Board) FindColumnByTitle(title string) (Column, bool) {
	for _, col := range b.Columns {
		if strings.EqualFold(col.Title, title) {
			return col, true
		}
	}
	return Column{}, false
}

// CardCount returns the number of cards across all columns
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// CardIndex returns the index of the card with the given id, or -1
func (c Column) CardIndex(id string) int {
	for i := range c.Cards {
		if c.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCard returns the card with the given id
func (c Column) FindCard(id string) (Card, bool) {
	i := c.CardIndex(id)
	if i < 0 {
		return Card{}, false
	}
	return c.Cards[i], true
}
