package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/tui"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	flagDesignStyle string
	flagDesignOut   string
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design studio: modest image generation and video prompts",
}

var designImageCmd = &cobra.Command{
	Use:   "image PROMPT",
	Short: "Generate an image and write it to a file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDesignImage,
}

var designVideoCmd = &cobra.Command{
	Use:   "video IDEA",
	Short: "Write a detailed prompt for an AI video generator",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDesignVideo,
}

var designStylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List image styles",
	Run: func(*cobra.Command, []string) {
		for _, s := range design.Styles {
			fmt.Printf("  %s\n", s)
		}
	},
}

func init() {
	designImageCmd.Flags().StringVarP(&flagDesignStyle, "style", "s", design.Styles[0],
		"Image style ("+strings.Join(design.Styles, ", ")+")")
	designImageCmd.Flags().StringVarP(&flagDesignOut, "out", "o", "", "Output file (default lifeos-<time>.jpg)")

	designCmd.AddCommand(designImageCmd, designVideoCmd, designStylesCmd)
	rootCmd.AddCommand(designCmd)
}

func runDesignImage(cmd *cobra.Command, args []string) error {
	if !design.ValidStyle(flagDesignStyle) {
		return fmt.Errorf("unknown style %q (see `lifeos design styles`)", flagDesignStyle)
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	fmt.Println(cli.RenderMuted("  Sedang membuat gambar..."))
	img, err := rt.studio.Image(cmd.Context(), flagDesignStyle, strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := flagDesignOut
	if out == "" {
		out = tui.ImageFileName(time.Now(), img.MIMEType)
	}
	if err := os.WriteFile(out, img.Bytes, 0o644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	fmt.Printf("  Saved %s (%s)\n", out, img.MIMEType)
	return nil
}

func runDesignVideo(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	prompt, err := rt.studio.VideoPrompt(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(88))
	if err != nil {
		fmt.Println(prompt)
		return nil
	}
	out, err := r.Render(prompt)
	if err != nil {
		fmt.Println(prompt)
		return nil
	}
	fmt.Print(out)
	return nil
}
