package kanban

import (
	"slices"
	"strings"
	"taskflow/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
)

// LabelPickerModel edits the labels of one card. Labels are picked by name;
// names that do not exist yet are created on save.
type LabelPickerModel struct {
	picker MultiSelectPickerModel
	ref    models.CardRef
}

// NewLabelPickerModel lists every label of data with the card's own labels ticked
func NewLabelPickerModel(data models.KanbanData, ref models.CardRef, card models.Card, styles boardStyles) LabelPickerModel {
	names := make([]string, 0, len(data.Labels))
	for _, label := range data.Labels {
		names = append(names, label.Name)
	}
	slices.Sort(names)

	selected := make(map[string]bool)
	for _, id := range card.Labels {
		if label, ok := data.FindLabel(id); ok {
			selected[label.Name] = true
		}
	}

	config := MultiSelectPickerConfig{
		Title:            "Labels: " + card.Title,
		ItemTypeSingular: "label",
		SanitizeFunc:     sanitizeLabel,
		AllItems:         names,
		SelectedItems:    selected,
	}

	return LabelPickerModel{
		picker: NewMultiSelectPickerModel(config, styles),
		ref:    ref,
	}
}

// Update handles label picker events
func (m LabelPickerModel) Update(msg tea.KeyMsg) (LabelPickerModel, tea.Cmd, pickerResult) {
	picker, cmd, result := m.picker.Update(msg)
	m.picker = picker
	return m, cmd, result
}

func (m LabelPickerModel) View() string {
	return m.picker.View()
}

// sanitizeLabel trims a label name and collapses inner whitespace
func sanitizeLabel(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// SelectedNames returns the ticked label names
func (m LabelPickerModel) SelectedNames() []string {
	return m.picker.GetSelectedItems()
}
