package kanban

import (
	"taskflow/internal/kanban/models"
	"taskflow/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Layout constants
	columnWidth             = 40
	columnPaddingHorizontal = 2
	cardPaddingHorizontal   = 1
	cardBorderWidth         = 1
)

// boardStyles are rebuilt whenever the palette changes
type boardStyles struct {
	theme.Styles

	boardTitle          lipgloss.Style
	column              lipgloss.Style
	selectedColumn      lipgloss.Style
	columnTitle         lipgloss.Style
	selectedColumnTitle lipgloss.Style
	card                lipgloss.Style
	selectedCard        lipgloss.Style
	moveSelectedCard    lipgloss.Style
	cardTitle           lipgloss.Style
	cardPreview         lipgloss.Style
	cardMeta            lipgloss.Style
	help                lipgloss.Style
	scrollIndicator     lipgloss.Style
	filterIndicator     lipgloss.Style
	detailBox           lipgloss.Style
	searchBox           lipgloss.Style
	inputBox            lipgloss.Style

	pickerBox           lipgloss.Style
	pickerItem          lipgloss.Style
	pickerItemSelected  lipgloss.Style
	pickerItemHighlight lipgloss.Style
	pickerCreateNew     lipgloss.Style
	columnEditorPrompt  lipgloss.Style

	datePickerBox       lipgloss.Style
	datePickerMonth     lipgloss.Style
	datePickerDayHeader lipgloss.Style
	datePickerDay       lipgloss.Style
	datePickerToday     lipgloss.Style
	datePickerCursor    lipgloss.Style
	datePickerExamples  lipgloss.Style
}

func newBoardStyles(t theme.Styles) boardStyles {
	p := t.Palette
	return boardStyles{
		Styles: t,

		boardTitle: t.Title.Padding(0, 1),

		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, columnPaddingHorizontal).
			Width(columnWidth),

		selectedColumn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderFocused).
			Padding(1, columnPaddingHorizontal).
			Width(columnWidth),

		columnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Align(lipgloss.Center),

		selectedColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			Background(p.Surface).
			Underline(true).
			Align(lipgloss.Center),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(p.Border).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1),

		selectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(p.BorderFocused).
			Background(p.Surface).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1).
			Bold(true),

		moveSelectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(p.Warning).
			Background(p.MoveSurface).
			Padding(0, cardPaddingHorizontal).
			MarginBottom(1).
			Bold(true),

		cardTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		cardPreview: lipgloss.NewStyle().
			Foreground(p.TextMuted),

		cardMeta: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Italic(true),

		help: t.Muted.Padding(1, 2),

		scrollIndicator: lipgloss.NewStyle().
			Foreground(p.Primary).
			Italic(true).
			Align(lipgloss.Center),

		filterIndicator: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),

		detailBox: t.ModalBox.Width(70),
		searchBox: t.ModalBox.Width(70),
		inputBox:  t.ModalBox.Width(50),

		pickerBox: t.ModalBox.Width(60),

		pickerItem: lipgloss.NewStyle().
			Foreground(p.Text).
			PaddingLeft(2),

		pickerItemSelected: lipgloss.NewStyle().
			Foreground(p.Success).
			PaddingLeft(2),

		pickerItemHighlight: lipgloss.NewStyle().
			Foreground(p.TextBright).
			Background(p.Surface).
			Bold(true).
			PaddingLeft(2),

		pickerCreateNew: lipgloss.NewStyle().
			Foreground(p.Accent).
			Italic(true).
			PaddingLeft(2),

		columnEditorPrompt: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		datePickerBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Secondary).
			Padding(1, 2).
			Width(50),

		datePickerMonth: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			Align(lipgloss.Center),

		datePickerDayHeader: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Bold(true),

		datePickerDay: lipgloss.NewStyle().
			Foreground(p.Text),

		datePickerToday: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		datePickerCursor: lipgloss.NewStyle().
			Background(p.Warning).
			Foreground(p.Surface).
			Bold(true),

		datePickerExamples: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Italic(true),
	}
}

// priorityColor maps a priority to a palette color. Medium gets no badge.
func (s boardStyles) priorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityUrgent:
		return s.Palette.Danger
	case models.PriorityHigh:
		return s.Palette.Warning
	case models.PriorityLow:
		return s.Palette.TextMuted
	default:
		return s.Palette.Primary
	}
}

// dueColor maps a due bucket to a palette color
func (s boardStyles) dueColor(b models.DueBucket) lipgloss.Color {
	switch b {
	case models.DueOverdue, models.DueToday:
		return s.Palette.Danger
	case models.DueThisWeek:
		return s.Palette.Warning
	default:
		return s.Palette.Success
	}
}

// labelBadge renders a label name in its own color
func (s boardStyles) labelBadge(l models.Label) string {
	return lipgloss.NewStyle().Foreground(s.LabelColor(l.Color)).Bold(true).Render("#" + l.Name)
}
