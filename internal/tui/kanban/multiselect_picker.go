package kanban

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// pickerResult tells the board whether an overlay is still open
type pickerResult int

const (
	pickerOpen pickerResult = iota
	pickerSave
	pickerCancel
)

// MultiSelectPickerConfig configures a generic multi-select picker
type MultiSelectPickerConfig struct {
	Title            string
	ItemTypeSingular string
	SanitizeFunc     func(string) string
	AllItems         []string
	SelectedItems    map[string]bool
	NoCreate         bool // pick only from AllItems
}

// MultiSelectPickerModel is a fuzzy-searchable multi-select picker
type MultiSelectPickerModel struct {
	config        MultiSelectPickerConfig
	styles        boardStyles
	textInput     textinput.Model
	query         string
	filteredItems []string
	cursorPos     int
	showCreate    bool // Show "create new" option
	filterMode    bool // true when in filter mode, false in navigation mode
	createMode    bool // true when in create mode
}

// NewMultiSelectPickerModel creates a new multi-select picker
func NewMultiSelectPickerModel(config MultiSelectPickerConfig, styles boardStyles) MultiSelectPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 50
	ti.Width = 40

	// Always start in navigation mode
	ti.Blur()

	if config.SelectedItems == nil {
		config.SelectedItems = map[string]bool{}
	}

	return MultiSelectPickerModel{
		config:        config,
		styles:        styles,
		textInput:     ti,
		filteredItems: config.AllItems,
	}
}

// Update handles picker events
func (m MultiSelectPickerModel) Update(msg tea.KeyMsg) (MultiSelectPickerModel, tea.Cmd, pickerResult) {
	switch {
	case m.filterMode:
		switch msg.String() {
		case "esc":
			// Cancel filter, return to navigation mode
			m.textInput.SetValue("")
			m.query = ""
			m.filterItems()
			m.textInput.Blur()
			m.filterMode = false
			m.cursorPos = 0
			return m, nil, pickerOpen

		case "enter":
			m.textInput.Blur()
			m.filterMode = false
			return m, nil, pickerOpen
		}

		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m.query = m.textInput.Value()
		m.filterItems()
		m.cursorPos = 0
		return m, cmd, pickerOpen

	case m.createMode:
		switch msg.String() {
		case "esc":
			m.resetInput()
			m.createMode = false
			return m, nil, pickerOpen

		case "enter":
			m.addItem(m.textInput.Value())
			m.resetInput()
			m.createMode = false
			m.filterItems()
			return m, nil, pickerOpen
		}

		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd, pickerOpen
	}

	// Navigation mode
	switch msg.String() {
	case "n":
		if m.config.NoCreate {
			return m, nil, pickerOpen
		}
		m.textInput.SetValue("")
		m.textInput.Placeholder = "Enter new " + m.config.ItemTypeSingular + " name..."
		m.textInput.Focus()
		m.createMode = true
		return m, textinput.Blink, pickerOpen

	case "/":
		m.textInput.Focus()
		m.filterMode = true
		return m, textinput.Blink, pickerOpen

	case "enter":
		return m, nil, pickerSave

	case "esc":
		// Clear an active filter first
		if m.query != "" {
			m.textInput.SetValue("")
			m.query = ""
			m.filterItems()
			m.cursorPos = 0
			return m, nil, pickerOpen
		}
		return m, nil, pickerCancel

	case "tab", " ":
		m.toggleItem()

	case "j", "down":
		maxPos := len(m.filteredItems) - 1
		if m.showCreate {
			maxPos++
		}
		if m.cursorPos < maxPos {
			m.cursorPos++
		}

	case "k", "up":
		if m.cursorPos > 0 {
			m.cursorPos--
		}
	}

	return m, nil, pickerOpen
}

func (m *MultiSelectPickerModel) resetInput() {
	m.textInput.SetValue("")
	m.textInput.Placeholder = "Press / to filter..."
	m.textInput.Blur()
}

// addItem selects a new item, adding it to the list when it is unknown
func (m *MultiSelectPickerModel) addItem(input string) {
	item := m.config.SanitizeFunc(input)
	if item == "" {
		return
	}
	if existing, ok := findFold(m.config.AllItems, item); ok {
		item = existing
	} else {
		m.config.AllItems = append(m.config.AllItems, item)
		slices.Sort(m.config.AllItems)
	}
	m.config.SelectedItems[item] = true
}

// View renders the picker
func (m MultiSelectPickerModel) View() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render(m.config.Title))
	s.WriteString("\n\n")

	if m.createMode {
		s.WriteString(m.styles.ModalTitle.Render("Create new: "))
	} else if m.filterMode {
		s.WriteString(m.styles.ModalTitle.Render("Filtering: "))
	}
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")

	if len(m.config.AllItems) == 0 {
		empty := "No " + m.config.ItemTypeSingular + "s yet."
		if !m.config.NoCreate {
			empty += " Press 'n' to create one."
		}
		s.WriteString(m.styles.pickerItem.Render(empty))
		s.WriteString("\n")
	} else if len(m.filteredItems) == 0 && !m.showCreate {
		s.WriteString(m.styles.pickerItem.Render("No matching " + m.config.ItemTypeSingular + "s"))
		s.WriteString("\n")
	} else {
		for i, item := range m.filteredItems {
			s.WriteString(m.renderItem(i, item))
		}
		if m.showCreate && m.query != "" {
			s.WriteString(m.renderCreateNew(len(m.filteredItems)))
		}
	}

	s.WriteString("\n")

	var help string
	switch {
	case m.createMode:
		help = "enter: create • esc: cancel"
	case m.filterMode:
		help = "enter: apply filter • esc: cancel"
	case m.query != "":
		help = "jk: navigate • tab: toggle • n: new • /: filter • esc: clear • enter: save"
	default:
		help = "jk: navigate • tab: toggle • n: new • /: filter • enter: save • esc: cancel"
	}
	if m.config.NoCreate {
		help = strings.Replace(help, " • n: new", "", 1)
	}
	s.WriteString(m.styles.ModalHelp.Render(help))

	return m.styles.pickerBox.Render(s.String())
}

func (m MultiSelectPickerModel) renderItem(index int, item string) string {
	checkbox := "[ ]"
	if m.config.SelectedItems[item] {
		checkbox = "[x]"
	}
	text := checkbox + " " + item

	style := m.styles.pickerItem
	if index == m.cursorPos {
		style = m.styles.pickerItemHighlight
	} else if m.config.SelectedItems[item] {
		style = m.styles.pickerItemSelected
	}

	return style.Render(text) + "\n"
}

func (m MultiSelectPickerModel) renderCreateNew(index int) string {
	checkbox := "[ ]"
	if m.config.SelectedItems[m.config.SanitizeFunc(m.query)] {
		checkbox = "[x]"
	}
	text := checkbox + " + Create new: \"" + m.query + "\""

	style := m.styles.pickerCreateNew
	if index == m.cursorPos {
		style = m.styles.pickerItemHighlight
	}

	return style.Render(text) + "\n"
}

// toggleItem toggles the item at the current cursor position
func (m *MultiSelectPickerModel) toggleItem() {
	if m.showCreate && m.cursorPos == len(m.filteredItems) {
		item := m.config.SanitizeFunc(m.query)
		if item == "" {
			return
		}
		if m.config.SelectedItems[item] {
			delete(m.config.SelectedItems, item)
		} else {
			m.config.SelectedItems[item] = true
		}
		return
	}

	if m.cursorPos >= 0 && m.cursorPos < len(m.filteredItems) {
		item := m.filteredItems[m.cursorPos]
		if m.config.SelectedItems[item] {
			delete(m.config.SelectedItems, item)
		} else {
			m.config.SelectedItems[item] = true
		}
	}
}

// filterItems applies fuzzy matching to filter items
func (m *MultiSelectPickerModel) filterItems() {
	if m.query == "" {
		m.filteredItems = m.config.AllItems
		m.showCreate = false
		return
	}

	matches := fuzzy.Find(m.query, m.config.AllItems)
	filtered := make([]string, len(matches))
	for i, match := range matches {
		filtered[i] = match.Str
	}
	m.filteredItems = filtered

	_, exact := findFold(m.config.AllItems, m.query)
	m.showCreate = !exact && !m.config.NoCreate
}

// findFold returns the item equal to query ignoring case and surrounding space
func findFold(items []string, query string) (string, bool) {
	query = strings.TrimSpace(query)
	for _, item := range items {
		if strings.EqualFold(item, query) {
			return item, true
		}
	}
	return "", false
}

// GetSelectedItems returns the selected items in sorted order
func (m MultiSelectPickerModel) GetSelectedItems() []string {
	items := make([]string, 0, len(m.config.SelectedItems))
	for item, on := range m.config.SelectedItems {
		if on {
			items = append(items, item)
		}
	}
	slices.Sort(items)
	return items
}
