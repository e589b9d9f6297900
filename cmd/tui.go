package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/tui"
	"github.com/theirongolddev/lifeos/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagImageDir string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagImageDir, "image-dir", "", "Where Design Studio saves images (default: <config dir>/images)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	rt, err := openRuntime(context.Background())
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	imageDir := flagImageDir
	if imageDir == "" {
		imageDir = filepath.Join(config.Dir(), "images")
	}

	app := tui.NewApp(tui.Deps{
		Manager:       rt.manager,
		Conversations: rt.conversations,
		Habits:        rt.habits,
		Studio:        rt.studio,
		Planner:       appCfg.Planner,
		ImageDir:      imageDir,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
