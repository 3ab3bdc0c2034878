package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colors the live view. Curves lists one asciigraph color per
// plotted series.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Curves  []asciigraph.AnsiColor
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"),
		Muted:   lipgloss.Color("#666666"),
		Curves:  []asciigraph.AnsiColor{asciigraph.Magenta, asciigraph.Cyan, asciigraph.Yellow},
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Curves:  []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Gray},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Curves:  []asciigraph.AnsiColor{asciigraph.Default, asciigraph.Blue, asciigraph.Red},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00aaff"),
		Muted:   lipgloss.Color("#446688"),
		Curves:  []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Orange, asciigraph.Blue},
	}
)

var Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal, ThemeOcean}

// GetTheme returns the named theme, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func (t Theme) curveColors(n int) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = t.Curves[i%len(t.Curves)]
	}
	return out
}
