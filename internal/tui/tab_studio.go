package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/tui/components"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type imageDoneMsg struct {
	path string
	err  error
}

type videoDoneMsg struct {
	prompt string
	err    error
}

// studioState tracks the design studio tab.
type studioState struct {
	video   bool // video prompt mode instead of image mode
	style   int  // index into design.Styles
	input   textinput.Model
	editing bool
	busy    bool

	result    string // last video prompt
	rendered  string
	savedPath string // last image written
	err       error
}

func newStudioState() studioState {
	ti := textinput.New()
	ti.Placeholder = "Deskripsikan gambar atau ide video..."
	ti.CharLimit = 1000
	ti.Prompt = "› "
	return studioState{input: ti}
}

// ImageFileName is the file name a generated image is saved under.
func ImageFileName(now time.Time, mimeType string) string {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	return "lifeos-" + now.Format("20060102-150405") + ext
}

func imageCmd(studio *design.Studio, style, prompt, dir string) tea.Cmd {
	return func() tea.Msg {
		img, err := studio.Image(context.Background(), style, prompt)
		if err != nil {
			return imageDoneMsg{err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return imageDoneMsg{err: fmt.Errorf("creating image dir: %w", err)}
		}
		path := filepath.Join(dir, ImageFileName(time.Now(), img.MIMEType))
		if err := os.WriteFile(path, img.Bytes, 0o644); err != nil {
			return imageDoneMsg{err: fmt.Errorf("writing image: %w", err)}
		}
		return imageDoneMsg{path: path}
	}
}

func videoCmd(studio *design.Studio, idea string) tea.Cmd {
	return func() tea.Msg {
		prompt, err := studio.VideoPrompt(context.Background(), idea)
		return videoDoneMsg{prompt: prompt, err: err}
	}
}

func (a App) updateStudioKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.studio

	switch msg.String() {
	case "i", "enter":
		s.editing = true
		return a, s.input.Focus()
	case "m":
		s.video = !s.video
		s.err = nil
	case "]":
		s.style = (s.style + 1) % len(design.Styles)
	case "[":
		s.style = (s.style - 1 + len(design.Styles)) % len(design.Styles)
	}
	return a, nil
}

func (a App) updateStudioInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.studio

	switch msg.String() {
	case "esc":
		s.editing = false
		s.input.Blur()
		return a, nil
	case "enter":
		text := strings.TrimSpace(s.input.Value())
		if text == "" || s.busy || a.deps.Studio == nil {
			return a, nil
		}
		s.editing = false
		s.input.Blur()
		s.busy = true
		s.err = nil
		if s.video {
			return a, tea.Batch(videoCmd(a.deps.Studio, text), a.spinner.Tick)
		}
		return a, tea.Batch(imageCmd(a.deps.Studio, design.Styles[s.style], text, a.deps.ImageDir), a.spinner.Tick)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return a, cmd
}

func (a App) renderStudioTab(cw int) string {
	t := theme.Active
	s := a.studio

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	activeStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.AccentDim).Bold(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	var b strings.Builder

	// Mode switch
	imageTab, videoTab := activeStyle.Render("Gambar"), inactiveStyle.Render("Prompt Video")
	if s.video {
		imageTab, videoTab = inactiveStyle.Render("Gambar"), activeStyle.Render("Prompt Video")
	}
	var head strings.Builder
	head.WriteString(imageTab + dimStyle.Render(" ") + videoTab + dimStyle.Render("   m ganti mode"))
	head.WriteString("\n\n")

	if !s.video {
		head.WriteString(mutedStyle.Render("Gaya: "))
		for i, style := range design.Styles {
			if i == s.style {
				head.WriteString(activeStyle.Render(style))
			} else {
				head.WriteString(inactiveStyle.Render(style))
			}
		}
		head.WriteString("\n\n")
	}
	head.WriteString(s.input.View())

	if s.editing {
		b.WriteString(components.FocusCard("Design Studio", head.String(), cw))
	} else {
		b.WriteString(components.ContentCard("Design Studio", head.String(), cw))
	}
	b.WriteString("\n")

	var out string
	switch {
	case s.busy:
		out = a.spinner.View() + dimStyle.Render(" Sedang membuat...")
	case s.err != nil:
		out = warnStyle.Render("⚠ " + s.err.Error())
	case s.video && s.rendered != "":
		out = s.rendered
	case !s.video && s.savedPath != "":
		out = okStyle.Render("Gambar disimpan: ") + mutedStyle.Render(s.savedPath)
	case s.video:
		out = dimStyle.Render("Tulis ide video, AI akan menyusun prompt sinematik yang syar'i.")
	default:
		out = dimStyle.Render("Semua gambar otomatis diberi batasan: tanpa wajah detail, pakaian menutup aurat.")
	}
	b.WriteString(components.ContentCard("Hasil", out, cw))

	return b.String()
}
