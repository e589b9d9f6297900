package cmd

import (
	"fmt"

	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	vals := tui.SetupValues{Theme: appCfg.Appearance.Theme}
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	if err := tui.SaveSetup(vals); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `lifeos setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
