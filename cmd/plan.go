package cmd

import (
	"fmt"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/planner"

	"github.com/spf13/cobra"
)

var (
	flagPlanTarget string
	flagPlanSaved  string
	flagPlanMonths int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Savings plan: monthly and daily contributions toward a target",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPlanTarget, "target", "", "Target amount in Rupiah (default from config)")
	planCmd.Flags().StringVar(&flagPlanSaved, "saved", "", "Amount already saved (default from config)")
	planCmd.Flags().IntVar(&flagPlanMonths, "months", 0, "Horizon in months (default from config)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	targetStr, savedStr, months := appCfg.Planner.Target, appCfg.Planner.Saved, appCfg.Planner.Months
	if cmd.Flags().Changed("target") {
		targetStr = flagPlanTarget
	}
	if cmd.Flags().Changed("saved") {
		savedStr = flagPlanSaved
	}
	if cmd.Flags().Changed("months") {
		months = flagPlanMonths
	}

	target, err := planner.ParseMoney(targetStr)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}
	saved, err := planner.ParseMoney(savedStr)
	if err != nil {
		return fmt.Errorf("--saved: %w", err)
	}

	p, err := planner.Plan(target, saved, months)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RENCANA TABUNGAN"))
	fmt.Println()

	rows := [][]string{
		{"Target", cli.FormatRupiah(p.Target)},
		{"Terkumpul", cli.FormatRupiah(p.Saved)},
		{"Kekurangan", cli.FormatRupiah(p.Remaining)},
		{"Jangka", fmt.Sprintf("%d bulan", p.HorizonMonths)},
		{"---"},
		{"Tabung per bulan", cli.FormatRupiah(p.MonthlyContribution)},
		{"Tabung per hari", cli.FormatRupiah(p.DailyContribution)},
		{"Progres", cli.FormatPercent(p.Progress())},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Nilai"},
		Rows:    rows,
	}))

	if p.GoalMet() {
		fmt.Println()
		fmt.Println("  Target tercapai, Alhamdulillah!")
	}
	return nil
}
