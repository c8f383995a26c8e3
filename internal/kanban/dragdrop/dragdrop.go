package dragdrop

import (
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
)

// ItemType is what was dragged
type ItemType string

const (
	ItemColumn ItemType = "column"
	ItemCard   ItemType = "card"
)

// Location is a position inside a container: a column id for cards,
// the board for columns
type Location struct {
	ContainerID string
	Index       int
}

// DropResult describes a completed drag gesture.
// Destination is nil when the item was dropped outside any container.
type DropResult struct {
	Type        ItemType
	Source      Location
	Destination *Location
}

// IsNoop reports whether the drop leaves everything where it was
func (r DropResult) IsNoop() bool {
	if r.Destination == nil {
		return true
	}
	return r.Destination.ContainerID == r.Source.ContainerID && r.Destination.Index == r.Source.Index
}

// Resolve applies a drop to the active board. Destination indexes are relative
// to the list with the dragged item already removed.
func Resolve(engine *operations.Engine, data models.KanbanData, result DropResult) (models.KanbanData, error) {
	if result.IsNoop() {
		return data, operations.ErrUnchanged
	}
	dst := *result.Destination

	switch result.Type {
	case ItemColumn:
		return engine.MoveColumn(data, data.ActiveBoard, result.Source.Index, dst.Index)
	case ItemCard:
		if result.Source.ContainerID == dst.ContainerID {
			return engine.ReorderCard(data, data.ActiveBoard, dst.ContainerID, result.Source.Index, dst.Index)
		}
		return engine.MoveCard(data, result.Source.ContainerID, dst.ContainerID, result.Source.Index, dst.Index)
	default:
		return data, operations.ErrUnchanged
	}
}

// CardDrop builds the drop result for moving a card between (or within) columns
func CardDrop(srcColumnID string, srcIndex int, dstColumnID string, dstIndex int) DropResult {
	return DropResult{
		Type:        ItemCard,
		Source:      Location{ContainerID: srcColumnID, Index: srcIndex},
		Destination: &Location{ContainerID: dstColumnID, Index: dstIndex},
	}
}

// ColumnDrop builds the drop result for reordering the columns of a board
func ColumnDrop(boardID string, from, to int) DropResult {
	return DropResult{
		Type:        ItemColumn,
		Source:      Location{ContainerID: boardID, Index: from},
		Destination: &Location{ContainerID: boardID, Index: to},
	}
}
