package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"taskflow/internal/kanban/dragdrop"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
)

var fixedNow = time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

func testEngine() *operations.Engine {
	var mu sync.Mutex
	n := 100
	return operations.New(
		operations.WithClock(func() time.Time { return fixedNow }),
		operations.WithIDGenerator(func(kind string) string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("%s-%d", kind, n)
		}),
	)
}

func newTestSession(t *testing.T, storage store.Storage) *Session {
	t.Helper()
	s, err := NewSession(testEngine(), store.NewGateway(storage), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

type failingStorage struct {
	*store.MemoryStorage
}

func (failingStorage) SetItem(key, value string) error {
	return errors.New("disk full")
}

func TestNewSession_Default(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())

	if !reflect.DeepEqual(s.Data(), models.DefaultData()) {
		t.Errorf("expected default tree, got %+v", s.Data())
	}
	if s.DarkMode() {
		t.Error("expected light mode by default")
	}
}

func TestApply_CommitsAndSaves(t *testing.T) {
	storage := store.NewMemoryStorage()
	s := newTestSession(t, storage)

	err := s.Apply("add column", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().AddColumn(data, "board-1", "Review")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	board, _ := s.Data().GetActiveBoard()
	if len(board.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(board.Columns))
	}

	saved, err := store.NewGateway(storage).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(saved, s.Data()) {
		t.Error("expected saved tree to equal committed tree")
	}
}

func TestApply_NoopDoesNotSave(t *testing.T) {
	storage := store.NewMemoryStorage()
	s := newTestSession(t, storage)
	before := s.Data()

	err := s.Apply("rename", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().RenameBoard(data, "board-1", "Main Board")
	})
	if !errors.Is(err, operations.ErrUnchanged) {
		t.Fatalf("expected ErrUnchanged, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Data()) {
		t.Error("expected tree unchanged")
	}
	if _, ok, _ := storage.GetItem(store.DataKey); ok {
		t.Error("expected nothing saved for a no-op")
	}
}

func TestApply_SaveFailureKeepsCommit(t *testing.T) {
	s := newTestSession(t, failingStorage{store.NewMemoryStorage()})

	if _, err := s.Dispatch(NewBoard{Title: "Side"}); err != nil {
		t.Fatalf("expected save failure to be swallowed, got %v", err)
	}
	if len(s.Data().Boards) != 2 {
		t.Errorf("expected commit to stand, got %d boards", len(s.Data().Boards))
	}
}

func TestApply_Concurrent(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(NewCard{Input: operations.CardInput{Title: fmt.Sprintf("card %d", i)}})
		}(i)
	}
	wg.Wait()

	board, _ := s.Data().GetActiveBoard()
	if got := len(board.Columns[0].Cards); got != 20 {
		t.Errorf("expected 20 cards, got %d", got)
	}
}

func TestImport_JSON(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())
	s.Dispatch(NewBoard{Title: "Extra"})
	snapshot := s.Data()

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := store.ExportTo(path, snapshot, store.FormatJSON, fixedNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s2 := newTestSession(t, store.NewMemoryStorage())
	if err := s2.Import(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s2.Data(), snapshot) {
		t.Error("expected imported tree to replace the current one")
	}
}

func TestImport_RejectedLeavesTree(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())
	before := s.Data()

	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"boards": {}, "activeBoard": "x"}`), 0644)
	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte(`{"boards": [`), 0644)

	if err := s.Import(invalid); !errors.Is(err, store.ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
	if err := s.Import(broken); !errors.Is(err, store.ErrParseImport) {
		t.Errorf("expected ErrParseImport, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Data()) {
		t.Error("expected tree untouched after rejected imports")
	}
}

func TestImport_MarkdownBoard(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())
	s.Apply("add label", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().AddLabel(data, "Bug", "#ff0000")
	})

	path := filepath.Join(t.TempDir(), "sprint.md")
	content := "# Sprint\n\n## Backlog\n\n- Fix crash `urgent` `#bug`\n- Tidy up `#Chore`\n\n## Done\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Import(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := s.Data()
	board, ok := data.GetActiveBoard()
	if !ok || board.Title != "Sprint" {
		t.Fatalf("expected imported board to be active, got %q", data.ActiveBoard)
	}
	if len(board.Columns) != 2 || len(board.Columns[0].Cards) != 2 {
		t.Fatalf("unexpected board shape: %+v", board.Columns)
	}

	crash := board.Columns[0].Cards[0]
	if crash.Priority != models.PriorityUrgent {
		t.Errorf("expected urgent, got %q", crash.Priority)
	}
	bug := data.Labels[0]
	if len(crash.Labels) != 1 || crash.Labels[0] != bug.ID {
		t.Errorf("expected existing Bug label to be reused, got %v", crash.Labels)
	}
	if len(data.Labels) != 2 || data.Labels[1].Name != "Chore" {
		t.Errorf("expected Chore label to be created, got %+v", data.Labels)
	}
}

func TestDispatch_Drop(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStorage())
	s.Dispatch(NewCard{Input: operations.CardInput{Title: "a"}})
	s.Dispatch(NewCard{Input: operations.CardInput{Title: "b"}})

	if _, err := s.Dispatch(Drop{Result: dragdrop.CardDrop("column-1", 0, "column-3", 0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	board, _ := s.Data().GetActiveBoard()
	if len(board.Columns[0].Cards) != 1 || board.Columns[2].Cards[0].Title != "a" {
		t.Errorf("expected card a moved to Done, got %+v", board.Columns)
	}

	if _, err := s.Dispatch(Drop{Result: dragdrop.DropResult{Type: dragdrop.ItemCard, Source: dragdrop.Location{ContainerID: "column-1"}}}); !operations.IsNoop(err) {
		t.Errorf("expected drop without destination to be a no-op, got %v", err)
	}
}
