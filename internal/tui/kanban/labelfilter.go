package kanban

import (
	"slices"
	"taskflow/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
)

// LabelFilterModel picks the labels a board's filter requires. A card must
// carry at least one of them to stay visible.
type LabelFilterModel struct {
	picker MultiSelectPickerModel
	labels []models.Label
}

func NewLabelFilterModel(data models.KanbanData, opts models.FilterOptions, styles boardStyles) LabelFilterModel {
	names := make([]string, 0, len(data.Labels))
	for _, label := range data.Labels {
		if !slices.Contains(names, label.Name) {
			names = append(names, label.Name)
		}
	}
	slices.Sort(names)

	selected := make(map[string]bool)
	for _, id := range opts.LabelIDs {
		if label, ok := data.FindLabel(id); ok {
			selected[label.Name] = true
		}
	}

	config := MultiSelectPickerConfig{
		Title:            "Filter by label",
		ItemTypeSingular: "label",
		SanitizeFunc:     sanitizeLabel,
		AllItems:         names,
		SelectedItems:    selected,
		NoCreate:         true,
	}

	return LabelFilterModel{
		picker: NewMultiSelectPickerModel(config, styles),
		labels: data.Labels,
	}
}

func (m LabelFilterModel) Update(msg tea.KeyMsg) (LabelFilterModel, tea.Cmd, pickerResult) {
	picker, cmd, result := m.picker.Update(msg)
	m.picker = picker
	return m, cmd, result
}

func (m LabelFilterModel) View() string {
	return m.picker.View()
}

// SelectedIDs returns the ids of every label whose name is ticked
func (m LabelFilterModel) SelectedIDs() []string {
	names := m.picker.GetSelectedItems()
	ids := []string{}
	for _, label := range m.labels {
		if slices.Contains(names, label.Name) {
			ids = append(ids, label.ID)
		}
	}
	return ids
}
