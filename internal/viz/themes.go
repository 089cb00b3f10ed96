package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colors the view chrome and the canvas the dots are blended over.
type Theme struct {
	Name string
	// Primary, Secondary run the title gradient; Secondary also draws the graph.
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	// Text is the tooltip box.
	Text lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
	}

	// white page, where the crayola colors read as printed
	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#333333"),
		Secondary:  lipgloss.Color("#0055aa"),
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#000000"),
	}

	ThemeSlate = Theme{
		Name:       "slate",
		Primary:    lipgloss.Color("#8fa8c8"),
		Secondary:  lipgloss.Color("#e0b060"),
		Background: lipgloss.Color("#1c2430"),
		Text:       lipgloss.Color("#f0f0f0"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemePaper, ThemeSlate}
)

// GetTheme returns a theme by name, cyberpunk if unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Canvas is the theme background as a blendable color.
func (t Theme) Canvas() colorful.Color {
	c, err := colorful.Hex(string(t.Background))
	if err != nil {
		return colorful.Color{}
	}
	return c
}
