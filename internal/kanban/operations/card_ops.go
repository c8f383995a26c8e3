package operations

import (
	"slices"
	"strings"
	"time"

	"taskflow/internal/kanban/models"
)

// CardInput carries the user-editable fields of a new card
type CardInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority
	Assignees   []string
	Labels      []string
}

// AddCard appends a new card to a column and records its create activity
func (e *Engine) AddCard(data models.KanbanData, boardID, columnID string, input CardInput) (models.KanbanData, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return data, ErrEmptyTitle
	}

	priority := input.Priority
	if !priority.Valid() {
		priority = models.PriorityMedium
	}

	card := models.Card{
		ID:          e.newID("card"),
		Title:       title,
		Description: input.Description,
		CreatedAt:   e.Now(),
		DueDate:     utcPtr(input.DueDate),
		Priority:    priority,
		Assignees:   uniq(input.Assignees),
		Labels:      knownLabels(data, input.Labels),
		Comments:    []models.Comment{},
		Activity:    []models.Activity{e.activity(models.ActivityCreate, models.ActivityDetails{})},
	}

	return editColumn(data, boardID, columnID, func(col models.Column) (models.Column, error) {
		col.Cards = append(slices.Clone(col.Cards), card)
		return col, nil
	})
}

// UpdateCard replaces the card at ref with the editable fields of updated.
// The id, creation time, comments and activity of the stored card are kept;
// one edit activity is appended per changed field, and an assign activity
// when the assignees change.
func (e *Engine) UpdateCard(data models.KanbanData, ref models.CardRef, updated models.Card) (models.KanbanData, error) {
	labels := knownLabels(data, updated.Labels)

	return editCard(data, ref, func(card models.Card) (models.Card, error) {
		title := strings.TrimSpace(updated.Title)
		if title == "" {
			return card, ErrEmptyTitle
		}

		next := card
		next.Title = title
		next.Description = updated.Description
		next.DueDate = utcPtr(updated.DueDate)
		next.Labels = labels
		next.Assignees = uniq(updated.Assignees)
		if updated.Priority.Valid() {
			next.Priority = updated.Priority
		}

		var entries []models.Activity
		edit := func(field, oldValue, newValue string) {
			if oldValue != newValue {
				entries = append(entries, e.activity(models.ActivityEdit, models.ActivityDetails{
					Field:    field,
					OldValue: oldValue,
					NewValue: newValue,
				}))
			}
		}
		edit("title", card.Title, next.Title)
		edit("description", card.Description, next.Description)
		edit("dueDate", formatDue(card.DueDate), formatDue(next.DueDate))
		edit("priority", string(card.Priority), string(next.Priority))
		edit("labels", setString(card.Labels), setString(next.Labels))

		if setString(card.Assignees) != setString(next.Assignees) {
			entries = append(entries, e.activity(models.ActivityAssign, models.ActivityDetails{
				Field:    "assignees",
				OldValue: setString(card.Assignees),
				NewValue: setString(next.Assignees),
			}))
		}

		if len(entries) == 0 {
			return card, ErrUnchanged
		}
		next.Activity = append(slices.Clone(card.Activity), entries...)
		return next, nil
	})
}

// DeleteCard removes a card from its column
func (e *Engine) DeleteCard(data models.KanbanData, ref models.CardRef) (models.KanbanData, error) {
	return editColumn(data, ref.BoardID, ref.ColumnID, func(col models.Column) (models.Column, error) {
		i := col.CardIndex(ref.CardID)
		if i < 0 {
			return col, ErrCardNotFound
		}
		col.Cards = slices.Delete(slices.Clone(col.Cards), i, i+1)
		return col, nil
	})
}

// AddComment appends a comment by the engine's user and a comment activity
func (e *Engine) AddComment(data models.KanbanData, ref models.CardRef, text string) (models.KanbanData, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return data, ErrEmptyText
	}

	return editCard(data, ref, func(card models.Card) (models.Card, error) {
		comment := models.Comment{
			ID:        e.newID("comment"),
			Text:      text,
			UserID:    e.userID,
			CreatedAt: e.Now(),
		}
		card.Comments = append(slices.Clone(card.Comments), comment)
		card.Activity = append(slices.Clone(card.Activity), e.activity(models.ActivityComment, models.ActivityDetails{}))
		return card, nil
	})
}

// ReorderCard moves a card within one column. to is an index into the
// card list after the moving card has been taken out. No activity is recorded.
func (e *Engine) ReorderCard(data models.KanbanData, boardID, columnID string, from, to int) (models.KanbanData, error) {
	return editColumn(data, boardID, columnID, func(col models.Column) (models.Column, error) {
		if from == to {
			return col, ErrUnchanged
		}
		cards, err := moveItem(col.Cards, from, to)
		if err != nil {
			return col, err
		}
		col.Cards = cards
		return col, nil
	})
}

// MoveCard moves a card on the active board. Within one column it is a plain
// reorder; across columns the card gets a move activity naming both column
// titles and both columns are replaced in the same resulting tree.
func (e *Engine) MoveCard(data models.KanbanData, srcColumnID, dstColumnID string, srcIndex, dstIndex int) (models.KanbanData, error) {
	if srcColumnID == dstColumnID {
		return e.ReorderCard(data, data.ActiveBoard, srcColumnID, srcIndex, dstIndex)
	}

	return editBoard(data, data.ActiveBoard, func(board models.Board) (models.Board, error) {
		si := board.ColumnIndex(srcColumnID)
		di := board.ColumnIndex(dstColumnID)
		if si < 0 || di < 0 {
			return board, ErrColumnNotFound
		}

		src := board.Columns[si]
		dst := board.Columns[di]
		if srcIndex < 0 || srcIndex >= len(src.Cards) {
			return board, ErrIndexOutOfRange
		}

		card := src.Cards[srcIndex]
		card.Activity = append(slices.Clone(card.Activity), e.activity(models.ActivityMove, models.ActivityDetails{
			From: src.Title,
			To:   dst.Title,
		}))

		src.Cards = slices.Delete(slices.Clone(src.Cards), srcIndex, srcIndex+1)
		dst.Cards = insertAt(dst.Cards, dstIndex, card)

		board.Columns = slices.Clone(board.Columns)
		board.Columns[si] = src
		board.Columns[di] = dst
		return board, nil
	})
}

// knownLabels keeps the ids that name an existing label, without duplicates
func knownLabels(data models.KanbanData, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if data.LabelIndex(id) >= 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func uniq(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// setString renders an id set in a stable order so sets can be compared
func setString(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}
