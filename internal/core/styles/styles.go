// Package styles provides shared lipgloss styles for CLI board output.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Board rendering styles, rebuilt by SetTheme.
var (
	ColumnTitleStyle lipgloss.Style
	ColumnCountStyle lipgloss.Style
	ColumnStyle      lipgloss.Style
	TaskTitleStyle   lipgloss.Style
	TaskMetaStyle    lipgloss.Style
	TagStyle         lipgloss.Style
	OverdueStyle     lipgloss.Style
	DoneStyle        lipgloss.Style
	PriorityStyles   map[int]lipgloss.Style
)

// SetTheme rebuilds the exported styles from a palette.
func SetTheme(p Palette) {
	ColumnTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	ColumnCountStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	TaskTitleStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TaskMetaStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TagStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error)
	DoneStyle = lipgloss.NewStyle().Foreground(p.Success).Strikethrough(true)
	PriorityStyles = map[int]lipgloss.Style{
		1: lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		2: lipgloss.NewStyle().Foreground(p.Error),
		3: lipgloss.NewStyle().Foreground(p.Warning),
		4: lipgloss.NewStyle().Foreground(p.Muted),
		5: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

func init() {
	SetTheme(themes[DefaultTheme])
}
