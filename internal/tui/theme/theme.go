// Package theme defines color themes for the lifeos TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color
	Border        lipgloss.Color
	BorderBright  lipgloss.Color
	BorderAccent  lipgloss.Color // Focused input and overlay borders
	TextDim       lipgloss.Color // Hints, disabled
	TextMuted     lipgloss.Color // Labels, metadata
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color // Active tab, user bubbles
	AccentBright  lipgloss.Color
	AccentDim     lipgloss.Color
	Gold          lipgloss.Color // Money and saved markers
	Green         lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Cyan          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Emerald

// Emerald is the default theme: deep green surfaces with gold highlights.
var Emerald = Theme{
	Name:          "emerald",
	Background:    lipgloss.Color("#06140F"),
	Surface:       lipgloss.Color("#0B1F18"),
	SurfaceHover:  lipgloss.Color("#123026"),
	SurfaceBright: lipgloss.Color("#1A4034"),
	Border:        lipgloss.Color("#1F4A3C"),
	BorderBright:  lipgloss.Color("#2F6B57"),
	BorderAccent:  lipgloss.Color("#10B981"),
	TextDim:       lipgloss.Color("#4B6B5F"),
	TextMuted:     lipgloss.Color("#8FB3A5"),
	TextPrimary:   lipgloss.Color("#ECFDF5"),
	Accent:        lipgloss.Color("#10B981"),
	AccentBright:  lipgloss.Color("#34D399"),
	AccentDim:     lipgloss.Color("#064E3B"),
	Gold:          lipgloss.Color("#D4A53C"),
	Green:         lipgloss.Color("#22C55E"),
	Orange:        lipgloss.Color("#F59E0B"),
	Red:           lipgloss.Color("#EF4444"),
	Blue:          lipgloss.Color("#60A5FA"),
	Cyan:          lipgloss.Color("#2DD4BF"),
}

// Sand is a warm desert palette.
var Sand = Theme{
	Name:          "sand",
	Background:    lipgloss.Color("#1A1510"),
	Surface:       lipgloss.Color("#241D16"),
	SurfaceHover:  lipgloss.Color("#30271E"),
	SurfaceBright: lipgloss.Color("#3D3226"),
	Border:        lipgloss.Color("#4A3D2E"),
	BorderBright:  lipgloss.Color("#6B5A44"),
	BorderAccent:  lipgloss.Color("#D4A53C"),
	TextDim:       lipgloss.Color("#6B5A44"),
	TextMuted:     lipgloss.Color("#B09A7C"),
	TextPrimary:   lipgloss.Color("#FBF3E4"),
	Accent:        lipgloss.Color("#D4A53C"),
	AccentBright:  lipgloss.Color("#E8C36A"),
	AccentDim:     lipgloss.Color("#3D2F12"),
	Gold:          lipgloss.Color("#E8C36A"),
	Green:         lipgloss.Color("#8DB360"),
	Orange:        lipgloss.Color("#D97B3A"),
	Red:           lipgloss.Color("#C8553D"),
	Blue:          lipgloss.Color("#6C9BC2"),
	Cyan:          lipgloss.Color("#5FA89A"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderBright:  lipgloss.Color("7"),
	BorderAccent:  lipgloss.Color("2"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("2"),
	AccentBright:  lipgloss.Color("10"),
	AccentDim:     lipgloss.Color("0"),
	Gold:          lipgloss.Color("3"),
	Green:         lipgloss.Color("2"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Blue:          lipgloss.Color("4"),
	Cyan:          lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{Emerald, Sand, Terminal}

// ByName returns a theme by its name, defaulting to Emerald.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Emerald
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
