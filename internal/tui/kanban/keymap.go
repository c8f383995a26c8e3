package kanban

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the board view
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Help          key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Move          key.Binding
	NewCard       key.Binding
	NewColumn     key.Binding
	NewBoard      key.Binding
	DarkMode      key.Binding
	PrevBoard     key.Binding
	NextBoard     key.Binding
	Export        key.Binding
	Search        key.Binding
	OpenCard      key.Binding
	AddComment    key.Binding
	DeleteCard    key.Binding
	EditCard      key.Binding
	EditLabels    key.Binding
	EditDue       key.Binding
	EditPriority  key.Binding
	EditColumns   key.Binding
	Boards        key.Binding
	ManageLabels  key.Binding
	LabelFilter   key.Binding
	CyclePriority key.Binding
	CycleDue      key.Binding
	ClearFilter   key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
	Yes           key.Binding
	No            key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Move:          key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move card")),
		NewCard:       key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "new card")),
		NewColumn:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "new column")),
		NewBoard:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "new board")),
		DarkMode:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "toggle dark mode")),
		PrevBoard:     key.NewBinding(key.WithKeys("alt+left", "["), key.WithHelp("[", "previous board")),
		NextBoard:     key.NewBinding(key.WithKeys("alt+right", "]"), key.WithHelp("]", "next board")),
		Export:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		OpenCard:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "card details")),
		AddComment:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add comment")),
		DeleteCard:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete card")),
		EditCard:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit card")),
		EditLabels:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "edit labels")),
		EditDue:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "set due date")),
		EditPriority:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "set priority")),
		EditColumns:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "edit columns")),
		Boards:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "boards")),
		ManageLabels:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "manage labels")),
		LabelFilter:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "label filter")),
		CyclePriority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority filter")),
		CycleDue:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "due date filter")),
		ClearFilter:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "clear filter")),
		Confirm:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:           key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:            key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

// ShortHelp is the status bar hint
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewCard, k.Move, k.OpenCard, k.Search, k.Help, k.Quit}
}

// FullHelp groups the bindings for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right, k.Move, k.OpenCard},
		{k.NewCard, k.EditCard, k.AddComment, k.EditLabels, k.EditDue, k.EditPriority, k.DeleteCard, k.NewColumn, k.EditColumns},
		{k.Boards, k.NewBoard, k.PrevBoard, k.NextBoard, k.ManageLabels, k.Search, k.LabelFilter, k.CyclePriority, k.CycleDue, k.ClearFilter},
		{k.Export, k.DarkMode, k.Help, k.Quit, k.ForceQuit},
	}
}
