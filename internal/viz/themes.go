package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the arena and the stats header.
type Theme struct {
	Name   string
	Arena  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{Name: "cyberpunk", Arena: lipgloss.Color("#ff00ff"), Accent: lipgloss.Color("#00ffff")}
	ThemeRetro     = Theme{Name: "retro", Arena: lipgloss.Color("#00ff00"), Accent: lipgloss.Color("#88ff88")}
	ThemeMinimal   = Theme{Name: "minimal", Arena: lipgloss.Color("#ffffff"), Accent: lipgloss.Color("#0088ff")}
	ThemeOcean     = Theme{Name: "ocean", Arena: lipgloss.Color("#00a8cc"), Accent: lipgloss.Color("#ffd700")}
	ThemeSunset    = Theme{Name: "sunset", Arena: lipgloss.Color("#ff6b6b"), Accent: lipgloss.Color("#feca57")}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{ThemeCyberpunk, ThemeRetro, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme switches to the theme after the current one.
func nextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
