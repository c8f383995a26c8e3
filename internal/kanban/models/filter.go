package models

import "slices"

// DueBucket classifies a due date relative to now
type DueBucket string

const (
	DueOverdue  DueBucket = "overdue"
	DueToday    DueBucket = "today"
	DueThisWeek DueBucket = "thisWeek"
	DueFuture   DueBucket = "future"
)

// DueBuckets lists the buckets in classification order
var DueBuckets = []DueBucket{DueOverdue, DueToday, DueThisWeek, DueFuture}

// Valid reports whether b is one of DueBuckets
func (b DueBucket) Valid() bool {
	return slices.Contains(DueBuckets, b)
}

// FilterOptions are the active filter criteria for one board
type FilterOptions struct {
	LabelIDs      []string   `json:"labelIds" yaml:"labelIds"`
	Priority      *Priority  `json:"priority" yaml:"priority"`
	DueDateFilter *DueBucket `json:"dueDateFilter" yaml:"dueDateFilter"`
}

// IsActive reports whether any criterion is set
func (f FilterOptions) IsActive() bool {
	return len(f.LabelIDs) > 0 || f.Priority != nil || f.DueDateFilter != nil
}
