package models

import (
	"fmt"
	"slices"
	"time"
)

// Priority is a card's urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists all priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// ParsePriority parses a priority name
func ParsePriority(s string) (Priority, bool) {
	p := Priority(s)
	return p, p.Valid()
}

// ActivityType identifies what an activity entry records
type ActivityType string

const (
	ActivityCreate  ActivityType = "create"
	ActivityMove    ActivityType = "move"
	ActivityEdit    ActivityType = "edit"
	ActivityComment ActivityType = "comment"
	ActivityAssign  ActivityType = "assign"
)

// ActivityDetails holds the type-dependent payload of an activity
type ActivityDetails struct {
	From     string `json:"from,omitempty" yaml:"from,omitempty"`
	To       string `json:"to,omitempty" yaml:"to,omitempty"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	OldValue string `json:"oldValue,omitempty" yaml:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty" yaml:"newValue,omitempty"`
}

// Activity is an append-only audit entry on a card
type Activity struct {
	ID        string          `json:"id" yaml:"id"`
	Type      ActivityType    `json:"type" yaml:"type"`
	UserID    string          `json:"userId" yaml:"userId"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
	Details   ActivityDetails `json:"details" yaml:"details"`
}

// Comment is immutable once created
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	UserID    string    `json:"userId" yaml:"userId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Card represents a single task on a board
type Card struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Assignees   []string   `json:"assignees" yaml:"assignees"`
	Labels      []string   `json:"labels" yaml:"labels"`
	Comments    []Comment  `json:"comments" yaml:"comments"`
	Activity    []Activity `json:"activity" yaml:"activity"`
}

// HasLabel returns true if the card carries the label
func (c Card) HasLabel(labelID string) bool {
	return slices.Contains(c.Labels, labelID)
}

// HasAnyLabel returns true if the card carries at least one of the labels
func (c Card) HasAnyLabel(labelIDs []string) bool {
	for _, id := range labelIDs {
		if c.HasLabel(id) {
			return true
		}
	}
	return false
}

// LastActivity returns the most recent activity entry
func (c Card) LastActivity() (Activity, bool) {
	if len(c.Activity) == 0 {
		return Activity{}, false
	}
	return c.Activity[len(c.Activity)-1], true
}

// Describe renders the entry as a short sentence
func (a Activity) Describe() string {
	d := a.Details
	switch a.Type {
	case ActivityCreate:
		return "created the card"
	case ActivityMove:
		return fmt.Sprintf("moved from %s to %s", d.From, d.To)
	case ActivityEdit:
		if d.OldValue == "" {
			return fmt.Sprintf("set %s to %q", d.Field, d.NewValue)
		}
		if d.NewValue == "" {
			return fmt.Sprintf("cleared %s", d.Field)
		}
		return fmt.Sprintf("changed %s from %q to %q", d.Field, d.OldValue, d.NewValue)
	case ActivityComment:
		return "commented"
	case ActivityAssign:
		return fmt.Sprintf("changed assignees to %q", d.NewValue)
	default:
		return string(a.Type)
	}
}
