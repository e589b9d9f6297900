package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// habitsState tracks the habit tab.
type habitsState struct {
	cursor   int
	adding   bool
	nameIn   textinput.Model
	category int // index into model.Categories
	notice   string
}

func newHabitsState() habitsState {
	ti := textinput.New()
	ti.Placeholder = "Nama kebiasaan baru"
	ti.CharLimit = 80
	ti.Width = 40
	ti.Prompt = "+ "
	return habitsState{nameIn: ti}
}

func (a App) updateHabitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := &a.habitUI

	switch msg.String() {
	case "j", "down":
		if h.cursor < len(a.habits)-1 {
			h.cursor++
		}
	case "k", "up":
		if h.cursor > 0 {
			h.cursor--
		}
	case " ", "enter":
		if h.cursor < len(a.habits) {
			if _, err := a.deps.Habits.Toggle(a.habits[h.cursor].ID); err != nil {
				h.notice = err.Error()
			}
			a.refreshHabits()
		}
	case "x", "delete":
		if h.cursor < len(a.habits) {
			name := a.habits[h.cursor].Name
			if err := a.deps.Habits.Delete(a.habits[h.cursor].ID); err != nil {
				h.notice = err.Error()
			} else {
				h.notice = fmt.Sprintf("%q dihapus", name)
			}
			a.refreshHabits()
		}
	case "R":
		n, err := a.deps.Habits.ResetDay()
		if err != nil {
			h.notice = err.Error()
		} else {
			h.notice = fmt.Sprintf("%d habit direset untuk hari baru", n)
		}
		a.refreshHabits()
	case "a":
		h.adding = true
		h.notice = ""
		h.nameIn.Reset()
		return a, h.nameIn.Focus()
	}
	return a, nil
}

func (a App) updateHabitInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := &a.habitUI

	switch msg.String() {
	case "esc":
		h.adding = false
		h.nameIn.Blur()
		return a, nil
	case "tab":
		h.category = (h.category + 1) % len(model.Categories)
		return a, nil
	case "shift+tab":
		h.category = (h.category - 1 + len(model.Categories)) % len(model.Categories)
		return a, nil
	case "enter":
		added, err := a.deps.Habits.Add(h.nameIn.Value(), model.Categories[h.category])
		if err != nil {
			h.notice = err.Error()
			return a, nil
		}
		h.adding = false
		h.nameIn.Blur()
		h.notice = fmt.Sprintf("%q ditambahkan", added.Name)
		a.refreshHabits()
		h.cursor = len(a.habits) - 1
		return a, nil
	}

	var cmd tea.Cmd
	h.nameIn, cmd = h.nameIn.Update(msg)
	return a, cmd
}

func (a App) renderHabitsTab(cw int) string {
	t := theme.Active
	h := a.habitUI

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	checkStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	tagStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	inner := components.CardInnerWidth(cw)
	var b strings.Builder

	// Progress header
	p := a.habitProgress
	summary := fmt.Sprintf("%d dari %d selesai", p.Completed, p.Total)
	bar := components.LabeledBar(summary, float64(p.Percent)/100, 20, max(inner-28, 10))
	b.WriteString(components.ContentCard("Progres Hari Ini", bar, cw))
	b.WriteString("\n")

	// List
	var list strings.Builder
	if len(a.habits) == 0 {
		list.WriteString(dimStyle.Render("Belum ada kebiasaan. Tekan a untuk menambah."))
	}
	for i, hb := range a.habits {
		check := checkStyle.Render("[ ]")
		name := rowStyle.Render(hb.Name)
		if hb.Completed {
			check = checkStyle.Render("[✓]")
			name = doneStyle.Render(hb.Name)
		}
		marker := rowStyle.Render("  ")
		if i == h.cursor && !h.adding {
			marker = accentStyle.Render("› ")
			name = selStyle.Render(hb.Name)
		}
		line := marker + check + rowStyle.Render(" ") + name +
			catStyle.Render("  "+hb.Category.Label())
		if hb.Custom {
			line += tagStyle.Render("  ✎")
		}
		list.WriteString(line)
		if i < len(a.habits)-1 {
			list.WriteString("\n")
		}
	}

	if h.adding {
		list.WriteString("\n\n")
		list.WriteString(h.nameIn.View())
		list.WriteString("\n")
		for i, c := range model.Categories {
			if i == h.category {
				list.WriteString(accentStyle.Render("(●) " + c.Label()))
			} else {
				list.WriteString(dimStyle.Render("( ) " + c.Label()))
			}
			list.WriteString(dimStyle.Render("  "))
		}
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("tab kategori · enter simpan · esc batal"))
	}
	if h.notice != "" {
		list.WriteString("\n\n")
		list.WriteString(dimStyle.Render(h.notice))
	}

	if h.adding {
		b.WriteString(components.FocusCard("Kebiasaan", list.String(), cw))
	} else {
		b.WriteString(components.ContentCard("Kebiasaan", list.String(), cw))
	}
	b.WriteString("\n")

	// Per-category breakdown
	var cats strings.Builder
	for i, c := range model.Categories {
		done, total := 0, 0
		for _, hb := range a.habits {
			if hb.Category != c {
				continue
			}
			total++
			if hb.Completed {
				done++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = float64(done) / float64(total)
		}
		cats.WriteString(components.LabeledBar(fmt.Sprintf("%s %d/%d", c.Label(), done, total), pct, 16, max(inner-24, 10)))
		if i < len(model.Categories)-1 {
			cats.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Per Kategori", cats.String(), cw))

	return b.String()
}
