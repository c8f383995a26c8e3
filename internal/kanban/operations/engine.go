package operations

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/kanban/models"
)

// DefaultUserID is recorded on comments and activity when no user is configured
const DefaultUserID = "system"

// Errors returned by the engine. Whenever one of these is returned the
// tree handed back is the input, unchanged.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrUnchanged       = errors.New("nothing to change")
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrLabelNotFound   = errors.New("label not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrLastBoard       = errors.New("cannot delete the last board")
)

var noopErrors = []error{
	ErrEmptyTitle, ErrEmptyText, ErrUnchanged,
	ErrBoardNotFound, ErrColumnNotFound, ErrCardNotFound, ErrLabelNotFound,
	ErrIndexOutOfRange, ErrLastBoard,
}

// IsNoop reports whether err means the operation left the tree as it was
func IsNoop(err error) bool {
	for _, target := range noopErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Engine applies copy-on-write mutations to a KanbanData tree.
// It holds no board state; only the clock, id source and acting user.
type Engine struct {
	now    func() time.Time
	newID  func(kind string) string
	userID string
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides how fresh ids are produced
func WithIDGenerator(gen func(kind string) string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithUser sets the user recorded on comments and activity
func WithUser(userID string) Option {
	return func(e *Engine) {
		if userID != "" {
			e.userID = userID
		}
	}
}

// New creates an Engine using the wall clock and random UUIDs
func New(opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		newID:  NewID,
		userID: DefaultUserID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewID returns a fresh identifier such as "card-3f1c..."
func NewID(kind string) string {
	return kind + "-" + uuid.NewString()
}

// Now returns the engine's current time in UTC. Stored timestamps use it.
func (e *Engine) Now() time.Time {
	return e.now().UTC()
}

// LocalNow returns the engine's current time in the local zone. Due date
// buckets and export file names count calendar days from it, matching the
// local midnight due dates are stored at.
func (e *Engine) LocalNow() time.Time {
	return e.now().In(time.Local)
}

// UserID returns the acting user
func (e *Engine) UserID() string {
	return e.userID
}

func (e *Engine) activity(kind models.ActivityType, details models.ActivityDetails) models.Activity {
	return models.Activity{
		ID:        e.newID("activity"),
		Type:      kind,
		UserID:    e.userID,
		Timestamp: e.Now(),
		Details:   details,
	}
}

// editBoard replaces one board with the result of fn
func editBoard(data models.KanbanData, boardID string, fn func(models.Board) (models.Board, error)) (models.KanbanData, error) {
	i := data.BoardIndex(boardID)
	if i < 0 {
		return data, ErrBoardNotFound
	}

	board, err := fn(data.Boards[i])
	if err != nil {
		return data, err
	}

	data.Boards = slices.Clone(data.Boards)
	data.Boards[i] = board
	return data, nil
}

// editColumn replaces one column with the result of fn
func editColumn(data models.KanbanData, boardID, columnID string, fn func(models.Column) (models.Column, error)) (models.KanbanData, error) {
	return editBoard(data, boardID, func(board models.Board) (models.Board, error) {
		i := board.ColumnIndex(columnID)
		if i < 0 {
			return board, ErrColumnNotFound
		}

		col, err := fn(board.Columns[i])
		if err != nil {
			return board, err
		}

		board.Columns = slices.Clone(board.Columns)
		board.Columns[i] = col
		return board, nil
	})
}

// editCard replaces one card with the result of fn
func editCard(data models.KanbanData, ref models.CardRef, fn func(models.Card) (models.Card, error)) (models.KanbanData, error) {
	return editColumn(data, ref.BoardID, ref.ColumnID, func(col models.Column) (models.Column, error) {
		i := col.CardIndex(ref.CardID)
		if i < 0 {
			return col, ErrCardNotFound
		}

		card, err := fn(col.Cards[i])
		if err != nil {
			return col, err
		}

		col.Cards = slices.Clone(col.Cards)
		col.Cards[i] = card
		return col, nil
	})
}

// moveItem removes the item at from and inserts it at to, where to is an
// index into the list after removal. to is clamped to the valid range.
func moveItem[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) {
		return items, ErrIndexOutOfRange
	}

	out := slices.Clone(items)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	to = clamp(to, 0, len(out))
	return slices.Insert(out, to, item), nil
}

// insertAt returns a copy of items with item inserted at the clamped index
func insertAt[T any](items []T, index int, item T) []T {
	out := slices.Clone(items)
	return slices.Insert(out, clamp(index, 0, len(out)), item)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
