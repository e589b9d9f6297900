package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"
	"github.com/theirongolddev/lifeos/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

type echoFactory struct{}

func (echoFactory) CreateSession(context.Context, string, float32) (gemini.Session, error) {
	return echoSession{}, nil
}

type echoSession struct{}

func (echoSession) Send(_ context.Context, text string) (gemini.Reply, error) {
	return gemini.Reply{Text: "**echo** " + text}, nil
}

func newTestApp(t *testing.T, factory chat.SessionFactory) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	mgr := chat.NewManager(factory)
	convs := make(map[model.Mode]*chat.Conversation)
	for _, mode := range []model.Mode{model.ModeGeneral, model.ModeBusiness} {
		c, err := chat.NewConversation(st, mgr, mode)
		if err != nil {
			t.Fatalf("NewConversation: %v", err)
		}
		convs[mode] = c
	}
	habits, err := habit.New(st)
	if err != nil {
		t.Fatalf("habit.New: %v", err)
	}

	a := NewApp(Deps{
		Manager:       mgr,
		Conversations: convs,
		Habits:        habits,
		Studio:        design.NewStudio(nil, mgr),
		Planner:       config.DefaultConfig().Planner,
		ImageDir:      t.TempDir(),
	})
	a.needSetup = false
	a.setupForm = nil

	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

func typeText(t *testing.T, a App, text string) App {
	t.Helper()
	for _, r := range text {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		a = m.(App)
	}
	return a
}

// findMsg runs cmd, unpacking a batch, and returns the first message of type T.
func findMsg[T any](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if got, ok := c().(T); ok {
				return got, true
			}
		}
	}
	return zero, false
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past last tab -> %d, want -1", got)
		}
	}
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a := newTestApp(t, nil)

	a, _ = press(t, a, "h")
	if a.activeTab != tabHabits {
		t.Fatalf("activeTab = %d, want habits", a.activeTab)
	}
	a, _ = press(t, a, "c")
	if a.activeTab != tabChat {
		t.Fatalf("activeTab = %d, want chat", a.activeTab)
	}
	if !a.chats[0].input.Focused() {
		t.Fatal("chat input should be focused on entering the tab")
	}

	// Letters go to the input until esc.
	a, _ = press(t, a, "t")
	if a.activeTab != tabChat || a.chats[0].input.Value() != "t" {
		t.Fatalf("typed key should land in input, tab=%d value=%q", a.activeTab, a.chats[0].input.Value())
	}
	a, _ = press(t, a, "esc", "t")
	if a.activeTab != tabSavings {
		t.Fatalf("activeTab = %d, want savings", a.activeTab)
	}
}

func TestChatSubmitRoundTrip(t *testing.T) {
	a := newTestApp(t, echoFactory{})
	a, _ = press(t, a, "c")
	a = typeText(t, a, "Assalamualaikum")

	a, cmd := press(t, a, "enter")
	if !a.chats[0].busy || a.chats[0].pending != "Assalamualaikum" {
		t.Fatalf("pane should be busy with pending text, got busy=%v pending=%q", a.chats[0].busy, a.chats[0].pending)
	}

	reply, ok := findMsg[chatReplyMsg](cmd)
	if !ok {
		t.Fatal("enter should produce a chatReplyMsg")
	}
	m, _ := a.Update(reply)
	a = m.(App)

	p := a.chats[0]
	if p.busy || p.pending != "" {
		t.Fatal("pane should be idle after the reply")
	}
	if len(p.messages) != 3 {
		t.Fatalf("messages = %d, want greeting + user + reply", len(p.messages))
	}
	if got := p.messages[2].Text; got != "**echo** Assalamualaikum" {
		t.Fatalf("reply = %q", got)
	}
	if !strings.Contains(a.View(), "Assalamualaikum") {
		t.Fatal("view should show the transcript")
	}
}

func TestChatRegenerateAndSave(t *testing.T) {
	a := newTestApp(t, echoFactory{})
	a, _ = press(t, a, "b")
	a = typeText(t, a, "Ide konten")
	a, cmd := press(t, a, "enter")
	reply, _ := findMsg[chatReplyMsg](cmd)
	m, _ := a.Update(reply)
	a = m.(App)

	a, cmd = press(t, a, "esc", "r")
	reply, ok := findMsg[chatReplyMsg](cmd)
	if !ok {
		t.Fatal("r should regenerate")
	}
	m, _ = a.Update(reply)
	a = m.(App)

	p := a.chats[1]
	if len(p.messages) != 4 {
		t.Fatalf("messages = %d, want 4 after regenerate", len(p.messages))
	}
	if !strings.HasPrefix(p.messages[3].Text, "**echo** "+chat.BusinessTag) {
		t.Fatalf("business reply should carry the tag, got %q", p.messages[3].Text)
	}

	a, _ = press(t, a, "v", "f")
	p = a.chats[1]
	if !p.savedOnly || len(p.messages) != 1 || !p.messages[0].Saved {
		t.Fatalf("saved filter should show the one saved reply, got %+v", p.messages)
	}
}

func TestChatOfflineNotice(t *testing.T) {
	a := newTestApp(t, nil)
	a, _ = press(t, a, "c")
	a = typeText(t, a, "halo")
	a, cmd := press(t, a, "enter")
	reply, _ := findMsg[chatReplyMsg](cmd)
	m, _ := a.Update(reply)
	a = m.(App)

	p := a.chats[0]
	if p.messages[len(p.messages)-1].Text != chat.OfflineNotice {
		t.Fatalf("last message = %q, want offline notice", p.messages[len(p.messages)-1].Text)
	}
	if p.notice == "" {
		t.Fatal("offline reply should set a notice")
	}
}

func TestBusinessPromptSuggestion(t *testing.T) {
	a := newTestApp(t, nil)
	a, _ = press(t, a, "b", "esc", "p")
	if a.chats[1].input.Value() == "" || !a.chats[1].input.Focused() {
		t.Fatal("p should fill and focus the input with a suggestion")
	}
}

func TestSavingsEditing(t *testing.T) {
	a := newTestApp(t, nil)
	a, _ = press(t, a, "t")

	if got := a.savings.plan.MonthlyContribution.String(); got != "2500000" {
		t.Fatalf("initial monthly = %s, want 2500000", got)
	}

	a, _ = press(t, a, "e", "tab", "tab")
	if a.savings.focus != savingsFieldMonths {
		t.Fatalf("focus = %d, want months", a.savings.focus)
	}
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a = m.(App)
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a = m.(App)
	a = typeText(t, a, "6")
	a, _ = press(t, a, "enter")

	if a.savings.editing {
		t.Fatal("enter should leave editing")
	}
	if got := a.savings.plan.MonthlyContribution.String(); got != "5000000" {
		t.Fatalf("monthly = %s, want 5000000", got)
	}

	a, _ = press(t, a, "e", "tab", "tab")
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	a = m.(App)
	a = typeText(t, a, "x")
	if a.savings.err == nil {
		t.Fatal("non-numeric months should surface an error")
	}
	if got := a.savings.plan.HorizonMonths; got != 6 {
		t.Fatalf("last good plan should be kept, months = %d", got)
	}
}

func TestHabitsToggleAddDelete(t *testing.T) {
	a := newTestApp(t, nil)
	a, _ = press(t, a, "h")

	if a.habitProgress.Total != 5 || a.habitProgress.Completed != 2 {
		t.Fatalf("seed progress = %+v", a.habitProgress)
	}

	a, _ = press(t, a, "j", " ")
	if !a.habits[1].Completed || a.habitProgress.Completed != 3 {
		t.Fatalf("second habit should be toggled on, progress %+v", a.habitProgress)
	}

	a, _ = press(t, a, "a")
	a = typeText(t, a, "Sedekah Subuh")
	a, _ = press(t, a, "tab", "enter")
	if a.habitUI.adding {
		t.Fatal("enter should finish adding")
	}
	last := a.habits[len(a.habits)-1]
	if last.Name != "Sedekah Subuh" || last.Category != model.Categories[1] || !last.Custom {
		t.Fatalf("added habit = %+v", last)
	}

	a, _ = press(t, a, "x")
	if len(a.habits) != 5 {
		t.Fatalf("habits = %d after delete, want 5", len(a.habits))
	}

	a, _ = press(t, a, "R")
	if a.habitProgress.Completed != 0 {
		t.Fatalf("reset should clear completion, got %+v", a.habitProgress)
	}
}

func TestStudioImageWithoutCredential(t *testing.T) {
	a := newTestApp(t, nil)
	a, _ = press(t, a, "s", "]", "enter")
	a = typeText(t, a, "masjid saat senja")
	a, cmd := press(t, a, "enter")
	if !a.studio.busy {
		t.Fatal("studio should be busy after submit")
	}

	done, ok := findMsg[imageDoneMsg](cmd)
	if !ok {
		t.Fatal("enter should produce an imageDoneMsg")
	}
	m, _ := a.Update(done)
	a = m.(App)
	if a.studio.busy || a.studio.err == nil {
		t.Fatal("missing credential should surface as an error")
	}
}

func TestStudioVideoPrompt(t *testing.T) {
	a := newTestApp(t, echoFactory{})
	a, _ = press(t, a, "s", "m", "enter")
	a = typeText(t, a, "pagi di Madinah")
	a, cmd := press(t, a, "enter")

	done, ok := findMsg[videoDoneMsg](cmd)
	if !ok {
		t.Fatal("enter in video mode should produce a videoDoneMsg")
	}
	m, _ := a.Update(done)
	a = m.(App)
	if !strings.Contains(a.studio.result, "Topik video: pagi di Madinah") {
		t.Fatalf("result = %q", a.studio.result)
	}
}

func TestImageFileName(t *testing.T) {
	ts := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	if got := ImageFileName(ts, "image/jpeg"); got != "lifeos-20260105-093000.jpg" {
		t.Fatalf("jpeg name = %q", got)
	}
	if got := ImageFileName(ts, "image/png"); !strings.HasSuffix(got, ".png") {
		t.Fatalf("png name = %q", got)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, nil)
	for i := range components.Tabs {
		m, _ := a.switchTab(i)
		a = m.(App)
		if a.capturingInput() {
			a, _ = press(t, a, "esc")
		}
		if v := a.View(); v == "" {
			t.Fatalf("tab %d rendered empty", i)
		}
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := m.(App).View(); !strings.Contains(v, "terlalu sempit") {
		t.Fatal("narrow terminal should show the width warning")
	}
}

func TestSaveSetup(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := SaveSetup(SetupValues{APIKey: "  key-123 ", Theme: "sand"}); err != nil {
		t.Fatalf("SaveSetup: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.Gemini.APIKey != "key-123" || cfg.Appearance.Theme != "sand" {
		t.Fatalf("saved config = %+v", cfg)
	}
	if !config.Exists() {
		t.Fatal("config file should exist after setup")
	}
}
