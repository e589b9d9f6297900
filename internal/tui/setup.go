package tui

import (
	"strings"

	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues are the answers collected by the first-run form.
type SetupValues struct {
	APIKey string
	Theme  string
}

// NewSetupForm builds the first-run wizard, writing answers into v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Assalamu'alaikum, selamat datang di lifeos").
				Description("Asisten harian: chat AI, tabungan, habit, dan design studio.\nSemua bisa diubah lagi lewat `lifeos setup`."),
			huh.NewInput().
				Title("Gemini API key").
				Description("Dari aistudio.google.com. Kosongkan untuk mode offline atau jika memakai GEMINI_API_KEY.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
			huh.NewSelect[string]().
				Title("Tema warna").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// SaveSetup merges the answers into the saved config and applies the theme.
func SaveSetup(v SetupValues) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if key := strings.TrimSpace(v.APIKey); key != "" {
		cfg.Gemini.APIKey = key
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
		theme.SetActive(v.Theme)
	}

	return config.Save(cfg)
}
