package cmd

import (
	"fmt"

	"github.com/theirongolddev/lifeos/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default mode: %s\n", cfg.General.DefaultMode)
	fmt.Println()

	fmt.Println("  [Gemini]")
	if apiKey := config.GetAPIKey(cfg); apiKey != "" {
		fmt.Printf("    API key:     %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key:     not configured (AI offline)")
	}
	fmt.Printf("    Text model:  %s\n", cfg.Gemini.TextModel)
	fmt.Printf("    Image model: %s\n", cfg.Gemini.ImageModel)
	fmt.Println()

	fmt.Println("  [Planner]")
	fmt.Printf("    Target: %s\n", cfg.Planner.Target)
	fmt.Printf("    Saved:  %s\n", cfg.Planner.Saved)
	fmt.Printf("    Months: %d\n", cfg.Planner.Months)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:     %s\n", cfg.Server.Addr)
	fmt.Printf("    Habit reset: %s\n", cfg.Server.HabitResetCron)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  Run `lifeos setup` to reconfigure.")
	return nil
}
