package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/content"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// chatReplyMsg carries a finished Submit or Regenerate back to the UI.
type chatReplyMsg struct {
	mode model.Mode
	ex   chat.Exchange
	err  error
}

// chatPane is the state of one conversation tab.
type chatPane struct {
	conv     *chat.Conversation
	messages []model.Message
	viewport viewport.Model
	input    textinput.Model

	busy      bool
	pending   string // submitted text awaiting its reply
	cursor    int    // selected message
	savedOnly bool
	notice    string
	prompt    int // next business prompt suggestion

	width int
}

func newChatPane(conv *chat.Conversation) chatPane {
	ti := textinput.New()
	ti.Placeholder = "Tulis pesan..."
	ti.CharLimit = 4000
	ti.Prompt = "› "

	return chatPane{
		conv:     conv,
		input:    ti,
		viewport: viewport.New(60, 10),
		width:    60,
	}
}

func (p *chatPane) mode() model.Mode {
	if p.conv == nil {
		return model.ModeGeneral
	}
	return p.conv.Mode()
}

func (p *chatPane) reload() {
	if p.conv == nil {
		return
	}
	var (
		msgs []model.Message
		err  error
	)
	if p.savedOnly {
		msgs, err = p.conv.Saved()
	} else {
		msgs, err = p.conv.Messages()
	}
	if err != nil {
		p.notice = err.Error()
		return
	}
	p.messages = msgs
	if p.cursor >= len(msgs) || p.cursor < 0 {
		p.cursor = len(msgs) - 1
	}
}

func (p *chatPane) resize(width, contentH int) {
	p.width = width
	p.input.Width = width - 4
	p.viewport.Width = width
	// card border + title + typing line + input line
	p.viewport.Height = max(contentH-6, 3)
	p.refreshViewport()
}

// refreshViewport re-renders the transcript and scrolls to the newest message.
func (p *chatPane) refreshViewport() {
	p.viewport.SetContent(renderTranscript(p.messages, p.cursor, p.width))
	p.viewport.GotoBottom()
}

func (a *App) activePane() *chatPane {
	switch a.activeTab {
	case tabChat:
		return &a.chats[0]
	case tabBusiness:
		return &a.chats[1]
	}
	return nil
}

func (a *App) paneFor(mode model.Mode) *chatPane {
	if mode == model.ModeBusiness {
		return &a.chats[1]
	}
	return &a.chats[0]
}

func sendCmd(conv *chat.Conversation, text string, regenerate bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			ex  chat.Exchange
			err error
		)
		if regenerate {
			ex, err = conv.Regenerate(ctx)
		} else {
			ex, err = conv.Submit(ctx, text)
		}
		return chatReplyMsg{mode: conv.Mode(), ex: ex, err: err}
	}
}

func (a App) handleChatReply(msg chatReplyMsg) (tea.Model, tea.Cmd) {
	p := a.paneFor(msg.mode)
	p.busy = false
	p.pending = ""
	p.notice = ""

	switch {
	case msg.err != nil:
		p.notice = msg.err.Error()
	case msg.ex.Result.Kind == chat.KindOffline:
		p.notice = "AI offline: set GEMINI_API_KEY atau jalankan `lifeos setup`."
	case msg.ex.Result.Kind == chat.KindFailed && msg.ex.Result.Err != nil:
		p.notice = msg.ex.Result.Err.Error()
	}

	p.reload()
	p.cursor = len(p.messages) - 1
	p.refreshViewport()
	return a, nil
}

func (a App) updateChatInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.activePane()

	switch msg.String() {
	case "esc":
		p.input.Blur()
		return a, nil
	case "enter":
		text := p.input.Value()
		if strings.TrimSpace(text) == "" || p.busy || p.conv == nil {
			return a, nil
		}
		p.input.Reset()
		p.busy = true
		p.pending = text
		p.notice = ""
		return a, tea.Batch(sendCmd(p.conv, text, false), a.spinner.Tick)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return a, cmd
}

func (a App) updateChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.activePane()

	switch msg.String() {
	case "i", "enter":
		return a, p.input.Focus()
	case "j", "down":
		if p.cursor < len(p.messages)-1 {
			p.cursor++
		}
		p.viewport.SetContent(renderTranscript(p.messages, p.cursor, p.width))
		return a, nil
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
		p.viewport.SetContent(renderTranscript(p.messages, p.cursor, p.width))
		return a, nil
	case "r":
		if p.busy || p.conv == nil {
			return a, nil
		}
		p.busy = true
		p.notice = ""
		return a, tea.Batch(sendCmd(p.conv, "", true), a.spinner.Tick)
	case "v":
		if p.conv == nil || p.cursor < 0 || p.cursor >= len(p.messages) {
			return a, nil
		}
		if _, err := p.conv.ToggleSaved(p.messages[p.cursor].ID); err != nil {
			p.notice = err.Error()
		}
		p.reload()
		p.viewport.SetContent(renderTranscript(p.messages, p.cursor, p.width))
		return a, nil
	case "f":
		p.savedOnly = !p.savedOnly
		p.cursor = -1
		p.reload()
		p.refreshViewport()
		return a, nil
	case "n":
		if a.deps.Manager != nil {
			a.deps.Manager.Reset()
			p.notice = "Sesi AI baru dimulai."
		}
		return a, nil
	case "p":
		if a.activeTab != tabBusiness || len(content.BusinessPrompts) == 0 {
			return a, nil
		}
		p.input.SetValue(content.BusinessPrompts[p.prompt%len(content.BusinessPrompts)])
		p.input.CursorEnd()
		p.prompt++
		return a, p.input.Focus()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) renderChatTab(cw int) string {
	t := theme.Active
	p := a.activePane()

	title := "Asisten Umum"
	if p.mode() == model.ModeBusiness {
		title = "Business Coach"
	}
	if p.savedOnly {
		title += " · tersimpan"
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var status string
	switch {
	case p.busy:
		status = a.spinner.View() + dimStyle.Render(" AI sedang mengetik...")
	case p.notice != "":
		status = warnStyle.Render(p.notice)
	case p.savedOnly && len(p.messages) == 0:
		status = dimStyle.Render("Belum ada pesan tersimpan.")
	default:
		status = dimStyle.Render(fmt.Sprintf("%d pesan", len(p.messages)))
	}

	pending := ""
	if p.pending != "" {
		pending = renderBubble(model.Message{Sender: model.SenderUser, Text: p.pending}, false, p.width) + "\n"
	}

	body := p.viewport.View() + "\n" + pending + status + "\n" + p.input.View()
	if p.input.Focused() {
		return components.FocusCard(title, body, cw)
	}
	return components.ContentCard(title, body, cw)
}

// renderTranscript lays out the message log, highlighting the selected one.
func renderTranscript(msgs []model.Message, selected, width int) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderBubble(m, i == selected, width))
	}
	return b.String()
}

func renderBubble(m model.Message, selected bool, width int) string {
	t := theme.Active

	who := "Anda"
	whoColor := t.Accent
	if m.Sender == model.SenderAI {
		who = "AI"
		whoColor = t.Gold
	}

	header := lipgloss.NewStyle().Foreground(whoColor).Background(t.Surface).Bold(true).Render(who)
	if !m.Timestamp.IsZero() {
		header += lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(" · " + m.Timestamp.Format("15:04"))
	}
	if m.Saved {
		header += lipgloss.NewStyle().Foreground(t.Gold).Background(t.Surface).Render(" ★")
	}
	if selected {
		header = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render("▌") + header
	}

	var text string
	if m.Sender == model.SenderAI {
		text = renderMarkdown(m.Text, width)
	} else {
		text = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).
			Width(width).Render(m.Text)
	}
	return header + "\n" + text
}

// renderMarkdown renders AI replies. Plain text is returned if glamour fails.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
