package operations

import (
	"errors"
	"testing"

	"taskflow/internal/kanban/models"
)

func TestSetFilter(t *testing.T) {
	e := testEngine()
	data := testData()
	high := models.PriorityHigh

	got, err := e.SetFilter(data, "b1", models.FilterOptions{
		LabelIDs: []string{"bug", "ghost"},
		Priority: &high,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := got.FilterFor("b1")
	if !equalStrings(f.LabelIDs, []string{"bug"}) {
		t.Errorf("expected unknown labels dropped, got %v", f.LabelIDs)
	}
	if f.Priority == nil || *f.Priority != models.PriorityHigh {
		t.Errorf("expected priority high, got %v", f.Priority)
	}
	if len(data.Filters) != 0 {
		t.Error("input filters were modified")
	}

	if _, err := e.SetFilter(data, "nope", models.FilterOptions{}); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestSetFilter_DropsUnknownCriteria(t *testing.T) {
	e := testEngine()
	bogusPriority := models.Priority("critical")
	bogusDue := models.DueBucket("nextWeek")
	today := models.DueToday

	tests := []struct {
		name         string
		opts         models.FilterOptions
		wantPriority bool
		wantDue      *models.DueBucket
	}{
		{"unknown priority", models.FilterOptions{Priority: &bogusPriority}, false, nil},
		{"unknown due bucket", models.FilterOptions{DueDateFilter: &bogusDue}, false, nil},
		{"known due bucket", models.FilterOptions{DueDateFilter: &today}, false, &today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SetFilter(testData(), "b1", tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			f := got.FilterFor("b1")
			if (f.Priority != nil) != tt.wantPriority {
				t.Errorf("unexpected priority %v", f.Priority)
			}
			switch {
			case tt.wantDue == nil && f.DueDateFilter != nil:
				t.Errorf("expected due criterion dropped, got %q", *f.DueDateFilter)
			case tt.wantDue != nil && (f.DueDateFilter == nil || *f.DueDateFilter != *tt.wantDue):
				t.Errorf("expected due criterion %q, got %v", *tt.wantDue, f.DueDateFilter)
			}
		})
	}
}

func TestClearFilter(t *testing.T) {
	e := testEngine()
	data, _ := e.SetFilter(testData(), "b1", models.FilterOptions{LabelIDs: []string{"bug"}})

	got, err := e.ClearFilter(data, "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FilterFor("b1").IsActive() {
		t.Error("expected no active filter")
	}
	if _, err := e.ClearFilter(got, "b1"); !errors.Is(err, ErrUnchanged) {
		t.Errorf("expected ErrUnchanged, got %v", err)
	}
}
