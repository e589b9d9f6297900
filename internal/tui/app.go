// Package tui provides the interactive Bubble Tea dashboard for lifeos.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Deps are the domain services the dashboard drives.
type Deps struct {
	Manager       *chat.Manager
	Conversations map[model.Mode]*chat.Conversation
	Habits        *habit.Tracker
	Studio        *design.Studio
	Planner       config.PlannerConfig
	ImageDir      string // where generated images are written
}

const (
	tabDashboard = iota
	tabChat
	tabBusiness
	tabSavings
	tabHabits
	tabStudio
)

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	deps Deps

	// Daily content
	today         content.Today
	habits        []model.Habit
	habitProgress habit.Progress
	dataErr       error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	chats   [2]chatPane // general, business
	savings savingsState
	habitUI habitsState
	studio  studioState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5 // minimum content area height
)

// NewApp builds the dashboard. The first-run setup form is shown when no
// config file exists yet.
func NewApp(deps Deps) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		deps:      deps,
		today:     content.ForDay(time.Now()),
		needSetup: !config.Exists(),
		spinner:   sp,
		chats: [2]chatPane{
			newChatPane(deps.Conversations[model.ModeGeneral]),
			newChatPane(deps.Conversations[model.ModeBusiness]),
		},
		savings: newSavingsState(deps.Planner),
		habitUI: newHabitsState(),
		studio:  newStudioState(),
	}
	if a.needSetup {
		a.setupVals = SetupValues{Theme: theme.Active.Name}
		a.setupForm = NewSetupForm(&a.setupVals)
	}
	a.refreshHabits()
	for i := range a.chats {
		a.chats[i].reload()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		tickCmd(),
	}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// refreshHabits reloads the habit list and progress from the tracker.
func (a *App) refreshHabits() {
	if a.deps.Habits == nil {
		return
	}
	habits, err := a.deps.Habits.List()
	if err != nil {
		a.dataErr = err
		return
	}
	p, err := a.deps.Habits.Progress()
	if err != nil {
		a.dataErr = err
		return
	}
	a.habits = habits
	a.habitProgress = p
	a.dataErr = nil
	if a.habitUI.cursor >= len(habits) {
		a.habitUI.cursor = max(len(habits)-1, 0)
	}
}

func (a App) aiOnline() bool {
	return a.deps.Manager != nil && a.deps.Manager.Available()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.resizePanes()
		return a, nil

	case tickMsg:
		now := time.Time(msg)
		if now.YearDay() != a.today.Date.YearDay() || now.Year() != a.today.Date.Year() {
			a.today = content.ForDay(now)
			a.refreshHabits()
		}
		return a, tickCmd()

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case chatReplyMsg:
		return a.handleChatReply(msg)

	case imageDoneMsg:
		a.studio.busy = false
		a.studio.err = msg.err
		if msg.err == nil {
			a.studio.savedPath = msg.path
		}
		return a, nil

	case videoDoneMsg:
		a.studio.busy = false
		a.studio.err = msg.err
		if msg.err == nil {
			a.studio.result = msg.prompt
			a.studio.rendered = renderMarkdown(msg.prompt, a.cardInner())
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.handleMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Focused text inputs own the keyboard until esc
		if a.capturingInput() {
			return a.updateFocusedInput(msg)
		}

		switch key {
		case "?":
			a.showHelp = true
			return a, nil
		case "q":
			return a, tea.Quit
		case "left":
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				return a.switchTab(idx)
			}
		}

		return a.updateActiveTab(msg)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if p := a.activePane(); p != nil {
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return a, cmd
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.switchTab(tab)
			}
		}
	}
	return a, nil
}

// switchTab activates idx, moving input focus along with it.
func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	if p := a.activePane(); p != nil {
		p.input.Blur()
	}
	a.activeTab = idx

	switch idx {
	case tabDashboard, tabHabits:
		a.refreshHabits()
	case tabChat, tabBusiness:
		p := a.activePane()
		p.reload()
		p.refreshViewport()
		return a, p.input.Focus()
	}
	return a, nil
}

func (a App) capturingInput() bool {
	switch a.activeTab {
	case tabChat, tabBusiness:
		return a.activePane().input.Focused()
	case tabSavings:
		return a.savings.editing
	case tabHabits:
		return a.habitUI.adding
	case tabStudio:
		return a.studio.editing
	}
	return false
}

func (a App) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.activeTab {
	case tabChat, tabBusiness:
		return a.updateChatInput(msg)
	case tabSavings:
		return a.updateSavingsInput(msg)
	case tabHabits:
		return a.updateHabitInput(msg)
	case tabStudio:
		return a.updateStudioInput(msg)
	}
	return a, nil
}

func (a App) updateActiveTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.activeTab {
	case tabChat, tabBusiness:
		return a.updateChatKeys(msg)
	case tabSavings:
		return a.updateSavingsKeys(msg)
	case tabHabits:
		return a.updateHabitKeys(msg)
	case tabStudio:
		return a.updateStudioKeys(msg)
	}
	return a, nil
}

func (a App) busy() bool {
	return a.chats[0].busy || a.chats[1].busy || a.studio.busy
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := SaveSetup(a.setupVals); err != nil {
			a.dataErr = fmt.Errorf("saving config: %w", err)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// cardInner is the text width inside a full-width content card.
func (a App) cardInner() int {
	return components.CardInnerWidth(a.contentWidth())
}

// contentHeight is the space between the tab bar and the status bar.
func (a App) contentHeight() int {
	h := a.height - 2
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}

func (a *App) resizePanes() {
	for i := range a.chats {
		a.chats[i].resize(a.cardInner(), a.contentHeight())
	}
	if a.studio.result != "" {
		a.studio.rendered = renderMarkdown(a.studio.result, a.cardInner())
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal terlalu sempit (%d kolom)\n\n  lifeos butuh minimal %d kolom.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigasi", []struct{ key, desc string }{
			{"d c b t h s", "Pindah tab"},
			{"← →", "Tab sebelumnya / berikutnya"},
			{"j k", "Pilih baris / pesan"},
			{"esc", "Keluar dari kolom input"},
		}},
		{"Chat & Bisnis", []struct{ key, desc string }{
			{"i enter", "Tulis pesan"},
			{"r", "Jawab ulang pertanyaan terakhir"},
			{"v", "Simpan / batal simpan pesan"},
			{"f", "Tampilkan pesan tersimpan saja"},
			{"n", "Mulai sesi AI baru"},
			{"p", "Isi ide konten bisnis (Bisnis)"},
		}},
		{"Lainnya", []struct{ key, desc string }{
			{"e", "Ubah angka tabungan"},
			{"spasi a x R", "Centang / tambah / hapus / reset habit"},
			{"m [ ]", "Mode studio / ganti gaya gambar"},
			{"?", "Bantuan"},
			{"q", "Keluar"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Pintasan Keyboard"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tekan tombol apa saja untuk menutup"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHint() string {
	if a.capturingInput() {
		return "enter kirim  esc selesai"
	}
	switch a.activeTab {
	case tabChat:
		return "i tulis  r ulang  v simpan  f tersimpan"
	case tabBusiness:
		return "i tulis  p ide konten  r ulang  v simpan"
	case tabSavings:
		return "e ubah  w simpan ke config"
	case tabHabits:
		return "spasi centang  a tambah  x hapus"
	case tabStudio:
		return "enter tulis  m mode  [ ] gaya"
	}
	return cli.FormatDate(a.today.Date)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusHint(), a.aiOnline(), a.busy())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var body string
	switch a.activeTab {
	case tabDashboard:
		body = a.renderDashboardTab(cw)
	case tabChat, tabBusiness:
		body = a.renderChatTab(cw)
	case tabSavings:
		body = a.renderSavingsTab(cw)
	case tabHabits:
		body = a.renderHabitsTab(cw)
	case tabStudio:
		body = a.renderStudioTab(cw)
	}

	body = padHeight(truncateHeight(body, contentH), contentH)
	body = fillLinesWithBackground(body, cw, t.Background)
	body = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(now time.Time) tea.Msg {
		return tickMsg(now)
	})
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads every line to w so gaps between cards keep
// the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
