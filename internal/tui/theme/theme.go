package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palettes
// ---------------------------------------------------------------------------

// Palette is the set of colors every style is derived from
type Palette struct {
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextBright    lipgloss.Color
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Danger        lipgloss.Color
	Surface       lipgloss.Color
	MoveSurface   lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
}

// Dark is ANSI 0-15 plus a couple of 256-color surfaces
var Dark = Palette{
	Text:          lipgloss.Color("7"),
	TextMuted:     lipgloss.Color("8"),
	TextBright:    lipgloss.Color("15"),
	Primary:       lipgloss.Color("4"),
	Secondary:     lipgloss.Color("6"),
	Accent:        lipgloss.Color("5"),
	Success:       lipgloss.Color("2"),
	Warning:       lipgloss.Color("3"),
	Danger:        lipgloss.Color("1"),
	Surface:       lipgloss.Color("236"),
	MoveSurface:   lipgloss.Color("54"),
	Border:        lipgloss.Color("8"),
	BorderFocused: lipgloss.Color("4"),
}

// Light keeps the same hues but swaps the surfaces for pale ones
var Light = Palette{
	Text:          lipgloss.Color("0"),
	TextMuted:     lipgloss.Color("244"),
	TextBright:    lipgloss.Color("16"),
	Primary:       lipgloss.Color("25"),
	Secondary:     lipgloss.Color("30"),
	Accent:        lipgloss.Color("90"),
	Success:       lipgloss.Color("28"),
	Warning:       lipgloss.Color("130"),
	Danger:        lipgloss.Color("160"),
	Surface:       lipgloss.Color("254"),
	MoveSurface:   lipgloss.Color("189"),
	Border:        lipgloss.Color("250"),
	BorderFocused: lipgloss.Color("25"),
}

// For returns the palette for the dark mode preference
func For(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}

// ---------------------------------------------------------------------------
// Semantic styles
// ---------------------------------------------------------------------------

// Styles are the reusable styles built from one palette
type Styles struct {
	Palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Error lipgloss.Style
	Warn  lipgloss.Style
	Ok    lipgloss.Style

	Selected   lipgloss.Style
	SelectedBg lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	ModalHelp  lipgloss.Style
	StatusBar  lipgloss.Style
	HelpHint   lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
}

// New builds the styles for a palette
func New(p Palette) Styles {
	return Styles{
		Palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		Muted:    lipgloss.NewStyle().Foreground(p.TextMuted),
		Bold:     lipgloss.NewStyle().Bold(true),

		Error: lipgloss.NewStyle().Bold(true).Foreground(p.Danger),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		Ok:    lipgloss.NewStyle().Bold(true).Foreground(p.Success),

		Selected:   lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		SelectedBg: lipgloss.NewStyle().Foreground(p.TextBright).Background(p.Surface),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		ModalHelp:  lipgloss.NewStyle().Foreground(p.TextMuted),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border),
		HelpHint: lipgloss.NewStyle().Foreground(p.TextMuted),
		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(p.Secondary),
		HelpDesc: lipgloss.NewStyle().Foreground(p.Text),
	}
}

// LabelColor turns a stored label color into a lipgloss color, falling back
// to the accent color when it is empty
func (s Styles) LabelColor(color string) lipgloss.Color {
	if color == "" {
		return s.Palette.Accent
	}
	return lipgloss.Color(color)
}
