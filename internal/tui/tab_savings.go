package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/planner"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	savingsFieldTarget = iota
	savingsFieldSaved
	savingsFieldMonths
	savingsFieldCount // sentinel
)

var savingsLabels = [savingsFieldCount]string{"Target dana", "Sudah terkumpul", "Jangka (bulan)"}

// savingsState tracks the savings planner tab.
type savingsState struct {
	inputs  [savingsFieldCount]textinput.Model
	focus   int
	editing bool

	plan    planner.SavingsPlan
	err     error
	saved   bool  // flash after writing to config
	saveErr error // non-nil if last save failed
}

func newSavingsState(cfg config.PlannerConfig) savingsState {
	var s savingsState
	values := [savingsFieldCount]string{cfg.Target, cfg.Saved, strconv.Itoa(cfg.Months)}
	for i := range s.inputs {
		ti := textinput.New()
		ti.CharLimit = 20
		ti.Width = 20
		ti.Prompt = ""
		ti.SetValue(values[i])
		s.inputs[i] = ti
	}
	s.inputs[savingsFieldMonths].Placeholder = "12"
	s.recompute()
	return s
}

// recompute parses the inputs and refreshes the plan, keeping the last good
// plan on error.
func (s *savingsState) recompute() {
	target, err := planner.ParseMoney(s.inputs[savingsFieldTarget].Value())
	if err != nil {
		s.err = fmt.Errorf("target: %w", err)
		return
	}
	saved, err := planner.ParseMoney(s.inputs[savingsFieldSaved].Value())
	if err != nil {
		s.err = fmt.Errorf("terkumpul: %w", err)
		return
	}
	months, err := strconv.Atoi(strings.TrimSpace(s.inputs[savingsFieldMonths].Value()))
	if err != nil {
		s.err = fmt.Errorf("jangka: %w", planner.ErrInvalidInput)
		return
	}
	plan, err := planner.Plan(target, saved, months)
	if err != nil {
		s.err = err
		return
	}
	s.plan = plan
	s.err = nil
}

func (a App) updateSavingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		a.savings.editing = true
		a.savings.saved = false
		a.savings.focus = savingsFieldTarget
		return a, a.savings.inputs[a.savings.focus].Focus()
	case "w":
		a.savings.saveErr = a.saveSavingsConfig()
		a.savings.saved = a.savings.saveErr == nil
	}
	return a, nil
}

func (a App) updateSavingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.savings

	switch msg.String() {
	case "enter", "esc":
		s.inputs[s.focus].Blur()
		s.editing = false
		s.recompute()
		return a, nil
	case "tab", "down":
		s.inputs[s.focus].Blur()
		s.focus = (s.focus + 1) % savingsFieldCount
		return a, s.inputs[s.focus].Focus()
	case "shift+tab", "up":
		s.inputs[s.focus].Blur()
		s.focus = (s.focus - 1 + savingsFieldCount) % savingsFieldCount
		return a, s.inputs[s.focus].Focus()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	s.recompute()
	return a, cmd
}

// saveSavingsConfig writes the current inputs as the planner defaults.
func (a App) saveSavingsConfig() error {
	if a.savings.err != nil {
		return a.savings.err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Planner.Target = a.savings.plan.Target.String()
	cfg.Planner.Saved = a.savings.plan.Saved.String()
	cfg.Planner.Months = a.savings.plan.HorizonMonths
	return config.Save(cfg)
}

func (a App) renderSavingsTab(cw int) string {
	t := theme.Active
	s := a.savings
	p := s.plan

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)

	var b strings.Builder

	// Inputs
	var form strings.Builder
	for i := range s.inputs {
		style := labelStyle
		if s.editing && i == s.focus {
			style = focusStyle
		}
		fmt.Fprintf(&form, "%s  %s\n", style.Render(fmt.Sprintf("%-16s", savingsLabels[i])), s.inputs[i].View())
	}
	switch {
	case s.err != nil:
		form.WriteString(warnStyle.Render("⚠ " + s.err.Error()))
	case s.saveErr != nil:
		form.WriteString(warnStyle.Render("Gagal menyimpan: " + s.saveErr.Error()))
	case s.saved:
		form.WriteString(okStyle.Render("Tersimpan ke " + config.Path()))
	case s.editing:
		form.WriteString(dimStyle.Render("tab pindah kolom · enter selesai"))
	default:
		form.WriteString(dimStyle.Render("e ubah angka · w simpan sebagai default"))
	}
	if s.editing {
		b.WriteString(components.FocusCard("Rencana Tabungan", form.String(), cw))
	} else {
		b.WriteString(components.ContentCard("Rencana Tabungan", form.String(), cw))
	}
	b.WriteString("\n")

	// Figures
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Target", Value: cli.FormatRupiah(p.Target), Gold: true},
		{Label: "Terkumpul", Value: cli.FormatRupiah(p.Saved)},
		{Label: "Kekurangan", Value: cli.FormatRupiah(p.Remaining), Note: fmt.Sprintf("%d bulan", p.HorizonMonths)},
	}, cw))
	b.WriteString("\n")
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Tabung per bulan", Value: cli.FormatRupiah(p.MonthlyContribution), Gold: true},
		{Label: "Tabung per hari", Value: cli.FormatRupiah(p.DailyContribution), Note: fmt.Sprintf("1 bulan = %d hari", planner.DaysPerMonth)},
	}, cw))
	b.WriteString("\n")

	barW := components.CardInnerWidth(cw) - 22
	progress := components.LabeledBar("Progres", p.Progress(), 10, max(barW, 10))
	if p.GoalMet() {
		progress += "\n" + okStyle.Render("Target tercapai, Alhamdulillah!")
	}
	b.WriteString(components.ContentCard("", progress, cw))

	return b.String()
}
