package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
	"taskflow/internal/logs"
)

// Mutation turns the committed tree into the next one
type Mutation func(models.KanbanData) (models.KanbanData, error)

// Session owns the committed tree. Every change goes through Apply, which
// commits the result and then saves it.
type Session struct {
	mu        sync.Mutex
	engine    *operations.Engine
	gateway   *store.Gateway
	data      models.KanbanData
	dark      bool
	exportDir string
}

// NewSession loads the saved tree and dark mode preference
func NewSession(engine *operations.Engine, gateway *store.Gateway, exportDir string) (*Session, error) {
	data, err := gateway.Load()
	if err != nil {
		return nil, err
	}

	dark, err := gateway.DarkMode()
	if err != nil {
		logs.Logger.Printf("Ignoring saved dark mode: %v", err)
	}

	logs.Logger.Printf("Loaded %d boards, active board %s", len(data.Boards), data.ActiveBoard)

	return &Session{
		engine:    engine,
		gateway:   gateway,
		data:      data,
		dark:      dark,
		exportDir: exportDir,
	}, nil
}

// Data returns the committed tree. Callers must not modify it.
func (s *Session) Data() models.KanbanData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

func (s *Session) Engine() *operations.Engine {
	return s.engine
}

func (s *Session) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Apply runs fn against the latest committed tree. On success the result is
// committed and saved; a failed save is logged and the commit stands.
func (s *Session) Apply(op string, fn Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.data)
	if err != nil {
		if operations.IsNoop(err) {
			logs.Logger.Printf("No-op %s: %v", op, err)
		}
		return err
	}

	s.data = next
	logs.Logger.Printf("Committed %s", op)

	if err := s.gateway.Save(next); err != nil {
		logs.Logger.Printf("Failed to save after %s: %v", op, err)
	}
	return nil
}

// SetDarkMode stores the preference; a failed save is logged
func (s *Session) SetDarkMode(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dark = dark
	if err := s.gateway.SetDarkMode(dark); err != nil {
		logs.Logger.Printf("Failed to save dark mode: %v", err)
	}
}

// ToggleDarkMode flips the preference and returns the new value
func (s *Session) ToggleDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dark = !s.dark
	if err := s.gateway.SetDarkMode(s.dark); err != nil {
		logs.Logger.Printf("Failed to save dark mode: %v", err)
	}
	return s.dark
}

// Import replaces the tree with a JSON or YAML export, or adds a board from
// a markdown outline. A rejected file leaves the tree untouched.
func (s *Session) Import(path string) error {
	if store.FormatForPath(path) == store.FormatMarkdown {
		outline, err := store.ReadBoardMarkdownFile(path)
		if err != nil {
			logs.Logger.Printf("Rejected import of %s: %v", path, err)
			return err
		}
		return s.ImportBoard(outline)
	}

	data, err := store.ImportFile(path)
	if err != nil {
		logs.Logger.Printf("Rejected import of %s: %v", path, err)
		return err
	}

	logs.Logger.Printf("Importing %s (%d boards)", path, len(data.Boards))
	return s.Apply("import", func(models.KanbanData) (models.KanbanData, error) {
		return data, nil
	})
}

// ImportBoard creates a new board from a markdown outline. Labels are matched
// by name and created when missing.
func (s *Session) ImportBoard(outline store.BoardOutline) error {
	return s.Apply("import board", func(data models.KanbanData) (models.KanbanData, error) {
		e := s.engine

		titles := make([]string, 0, len(outline.Columns))
		for _, col := range outline.Columns {
			titles = append(titles, col.Title)
		}
		if len(titles) == 0 {
			titles = operations.DefaultColumnTitles
		}

		next, err := e.AddBoardWithColumns(data, outline.Title, titles)
		if err != nil {
			return data, err
		}
		board, _ := next.GetActiveBoard()

		for i, col := range outline.Columns {
			columnID := board.Columns[i].ID
			for _, card := range col.Cards {
				var labelIDs []string
				for _, name := range card.LabelNames {
					var id string
					next, id, err = EnsureLabel(e, next, name)
					if err != nil {
						return data, err
					}
					labelIDs = append(labelIDs, id)
				}

				next, err = e.AddCard(next, board.ID, columnID, operations.CardInput{
					Title:       card.Title,
					Description: card.Description,
					DueDate:     card.DueDate,
					Priority:    card.Priority,
					Labels:      labelIDs,
				})
				if err != nil {
					return data, fmt.Errorf("card %q: %w", card.Title, err)
				}
			}
		}
		return next, nil
	})
}

// EnsureLabel returns the id of the label named name, creating it when missing
func EnsureLabel(e *operations.Engine, data models.KanbanData, name string) (models.KanbanData, string, error) {
	for _, label := range data.Labels {
		if strings.EqualFold(label.Name, name) {
			return data, label.ID, nil
		}
	}
	next, err := e.AddLabel(data, name, "")
	if err != nil {
		return data, "", err
	}
	return next, next.Labels[len(next.Labels)-1].ID, nil
}

// ErrStaleRef is returned when a card reference no longer resolves
var ErrStaleRef = errors.New("card reference is stale")
