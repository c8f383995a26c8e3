package app

import (
	"errors"
	"fmt"
	"taskflow/internal/kanban/dragdrop"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
	"taskflow/internal/logs"
)

// Command is a keyboard shortcut or cross-component event
type Command interface {
	command()
}

// NewCard adds a card to a column of the active board, the first column when
// ColumnID is empty
type NewCard struct {
	ColumnID string
	Input    operations.CardInput
}

// NewColumn appends a column to the active board
type NewColumn struct {
	Title string
}

// NewBoard adds a board with the default columns and activates it
type NewBoard struct {
	Title string
}

type ToggleDarkMode struct{}

type PrevBoard struct{}

type NextBoard struct{}

// Export writes the tree to Path, or to the export directory with the
// default file name when Path is empty
type Export struct {
	Format store.Format
	Path   string
}

// OpenCard focuses a card, switching the active board if needed
type OpenCard struct {
	Ref models.CardRef
}

// Drop applies a finished drag gesture
type Drop struct {
	Result dragdrop.DropResult
}

func (NewCard) command()        {}
func (NewColumn) command()      {}
func (NewBoard) command()       {}
func (ToggleDarkMode) command() {}
func (PrevBoard) command()      {}
func (NextBoard) command()      {}
func (Export) command()         {}
func (OpenCard) command()       {}
func (Drop) command()           {}

// Outcome reports what a dispatched command produced
type Outcome struct {
	Card       models.CardRef
	ExportPath string
}

// Dispatch routes a command to the engine or the gateway
func (s *Session) Dispatch(cmd Command) (Outcome, error) {
	e := s.engine

	switch c := cmd.(type) {
	case NewCard:
		var created models.CardRef
		err := s.Apply("new card", func(data models.KanbanData) (models.KanbanData, error) {
			board, ok := data.GetActiveBoard()
			if !ok {
				return data, operations.ErrBoardNotFound
			}
			columnID := c.ColumnID
			if columnID == "" {
				if len(board.Columns) == 0 {
					return data, operations.ErrColumnNotFound
				}
				columnID = board.Columns[0].ID
			}
			next, err := e.AddCard(data, board.ID, columnID, c.Input)
			if err != nil {
				return data, err
			}
			col, _ := next.Boards[next.ActiveBoardIndex()].FindColumn(columnID)
			created = models.CardRef{BoardID: board.ID, ColumnID: columnID, CardID: col.Cards[len(col.Cards)-1].ID}
			return next, nil
		})
		return Outcome{Card: created}, err

	case NewColumn:
		return Outcome{}, s.Apply("new column", func(data models.KanbanData) (models.KanbanData, error) {
			return e.AddColumn(data, data.ActiveBoard, c.Title)
		})

	case NewBoard:
		return Outcome{}, s.Apply("new board", func(data models.KanbanData) (models.KanbanData, error) {
			return e.AddBoard(data, c.Title)
		})

	case ToggleDarkMode:
		s.ToggleDarkMode()
		return Outcome{}, nil

	case PrevBoard:
		return Outcome{}, s.Apply("previous board", e.PrevBoard)

	case NextBoard:
		return Outcome{}, s.Apply("next board", e.NextBoard)

	case Export:
		return s.export(c)

	case OpenCard:
		return s.openCard(c.Ref)

	case Drop:
		return Outcome{}, s.Apply("drop", func(data models.KanbanData) (models.KanbanData, error) {
			return dragdrop.Resolve(e, data, c.Result)
		})

	default:
		return Outcome{}, fmt.Errorf("unknown command %T", cmd)
	}
}

func (s *Session) export(c Export) (Outcome, error) {
	data := s.Data()
	now := s.engine.LocalNow()

	format := c.Format
	if format == "" {
		format = store.FormatJSON
		if c.Path != "" {
			format = store.FormatForPath(c.Path)
		}
	}

	var (
		path string
		err  error
	)
	if c.Path == "" {
		path, err = store.ExportFile(s.exportDir, data, format, now)
	} else {
		path = c.Path
		err = store.ExportTo(path, data, format, now)
	}
	if err != nil {
		logs.Logger.Printf("Export failed: %v", err)
		return Outcome{}, err
	}

	logs.Logger.Printf("Exported %s to %s", format, path)
	return Outcome{ExportPath: path}, nil
}

// openCard re-resolves ref against the committed tree. Anything that no
// longer matches (board, column or card) makes it a no-op.
func (s *Session) openCard(ref models.CardRef) (Outcome, error) {
	err := s.Apply("open card", func(data models.KanbanData) (models.KanbanData, error) {
		if _, _, _, ok := data.ResolveCard(ref); !ok {
			return data, ErrStaleRef
		}
		if data.ActiveBoard == ref.BoardID {
			return data, operations.ErrUnchanged
		}
		return s.engine.SetActiveBoard(data, ref.BoardID)
	})
	if errors.Is(err, ErrStaleRef) {
		logs.Logger.Printf("No-op open card: %s/%s/%s no longer resolves", ref.BoardID, ref.ColumnID, ref.CardID)
		return Outcome{}, err
	}
	if err != nil && !operations.IsNoop(err) {
		return Outcome{}, err
	}
	return Outcome{Card: ref}, nil
}
