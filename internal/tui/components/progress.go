package components

import (
	"fmt"

	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// ColorForPct returns the bar color for a completion ratio. Unlike a usage
// meter, more is better: red when barely started, accent when nearly done.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Gold
	case pct >= 0.7:
		return t.AccentBright
	case pct >= 0.4:
		return t.Accent
	case pct >= 0.2:
		return t.Orange
	default:
		return t.Red
	}
}

// ProgressBar renders a completion bar followed by its percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clampPct(pct)

	bar := progress.New(
		progress.WithSolidFill(string(ColorForPct(pct))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(ColorForPct(pct)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// LabeledBar renders "label  [bar] pct" with the label padded to labelW.
func LabeledBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		ProgressBar(pct, barWidth)
}
