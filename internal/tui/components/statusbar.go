package components

import (
	"strings"

	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. hint is tab-specific key help;
// busy shows that a request is in flight.
func RenderStatusBar(width int, hint string, aiOnline, busy bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	mutedStyle := base.Foreground(t.TextMuted)

	left := mutedStyle.Render(" [?]help  [q]uit")
	if hint != "" {
		left += mutedStyle.Render("  │  " + hint)
	}

	var right string
	switch {
	case busy:
		right = base.Foreground(t.Gold).Render("● menunggu AI ")
	case aiOnline:
		right = base.Foreground(t.Green).Render("● AI online ")
	default:
		right = base.Foreground(t.Red).Render("● AI offline ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + right
}
