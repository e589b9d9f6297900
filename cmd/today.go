package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/content"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Doa of the day and an inspiration quote",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	today := content.ForDay(time.Now())

	fmt.Println()
	fmt.Println(cli.RenderTitle("LIFEOS  " + cli.FormatDate(today.Date)))
	fmt.Println()

	doa := today.Doa
	fmt.Printf("  %s\n\n", cli.RenderMoney(doa.Title))
	fmt.Printf("  %s\n\n", doa.Arabic)
	fmt.Printf("  %s\n", cli.RenderMuted(doa.Latin))
	fmt.Printf("  \"%s\"\n\n", doa.Translation)

	q := today.Quote
	fmt.Printf("  %s\n", cli.RenderMoney(q.Category.Heading()))
	fmt.Printf("  %s\n", q.Text)
	fmt.Printf("  %s\n\n", cli.RenderMuted("~ "+q.Source))

	return nil
}
