package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	today := a.today
	plan := a.savings.plan

	greetStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Background).Bold(true)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	arabicStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface)
	latinStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Italic(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sourceStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)

	var b strings.Builder
	b.WriteString(greetStyle.Render(" Assalamu'alaikum"))
	b.WriteString(dateStyle.Render("  ·  " + cli.FormatDate(today.Date)))
	b.WriteString("\n")
	if a.dataErr != nil {
		b.WriteString(warnStyle.Render(" ⚠ " + a.dataErr.Error()))
		b.WriteString("\n")
	}

	aiValue, aiNote := "Offline", "set GEMINI_API_KEY"
	if a.aiOnline() {
		aiValue, aiNote = "Online", "Gemini siap membantu"
	}
	hp := a.habitProgress
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Habit hari ini", Value: fmt.Sprintf("%d/%d", hp.Completed, hp.Total), Note: fmt.Sprintf("%d%% selesai", hp.Percent)},
		{Label: "Tabungan", Value: cli.FormatRupiah(plan.Saved), Note: "dari " + cli.FormatRupiah(plan.Target), Gold: true},
		{Label: "Tabung per bulan", Value: cli.FormatRupiah(plan.MonthlyContribution), Note: fmt.Sprintf("%d bulan lagi", plan.HorizonMonths)},
		{Label: "Asisten AI", Value: aiValue, Note: aiNote},
	}, cw))
	b.WriteString("\n")

	// Doa + quote side by side, stacked when narrow
	cols := 2
	if a.isCompactLayout() {
		cols = 1
	}
	widths := components.LayoutRow(cw, cols)
	doaInner := components.CardInnerWidth(widths[0])

	doa := today.Doa
	doaBody := arabicStyle.Width(doaInner).Align(lipgloss.Right).Render(doa.Arabic) + "\n\n" +
		latinStyle.Width(doaInner).Render(doa.Latin) + "\n\n" +
		textStyle.Width(doaInner).Render(`"`+doa.Translation+`"`)
	doaCard := components.ContentCard("Doa Harian · "+doa.Title, doaBody, widths[0])

	quoteW := widths[len(widths)-1]
	quoteInner := components.CardInnerWidth(quoteW)
	q := today.Quote
	quoteBody := textStyle.Width(quoteInner).Render(q.Text) + "\n\n" + sourceStyle.Render("~ "+q.Source)
	quoteCard := components.ContentCard(q.Category.Heading(), quoteBody, quoteW)

	if cols == 2 {
		b.WriteString(components.CardRow([]string{doaCard, quoteCard}))
	} else {
		b.WriteString(doaCard + "\n" + quoteCard)
	}
	b.WriteString("\n")

	// Progress
	barW := max(components.CardInnerWidth(cw)-18, 10)
	progress := components.LabeledBar("Habit", float64(hp.Percent)/100, 12, barW) + "\n" +
		components.LabeledBar("Tabungan", plan.Progress(), 12, barW)
	b.WriteString(components.ContentCard("Progres", progress, cw))

	return b.String()
}
