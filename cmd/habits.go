package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeos/internal/cli"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/model"

	"github.com/spf13/cobra"
)

var flagHabitCategory string

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Daily habit checklist (state lasts for this process only; use tui or serve to keep it)",
	RunE:  runHabitsList,
}

var habitsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit and show the list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitsAdd,
}

var habitsToggleCmd = &cobra.Command{
	Use:   "toggle ID...",
	Short: "Toggle habits by ID and show the list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitsToggle,
}

var habitsDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete habits by ID and show the list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitsDelete,
}

func init() {
	habitsAddCmd.Flags().StringVarP(&flagHabitCategory, "category", "c", string(model.CategoryIbadah),
		"Category (ibadah, health, mindset, work)")

	habitsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show habits and today's progress",
		RunE:  runHabitsList,
	})
	habitsCmd.AddCommand(habitsAddCmd, habitsToggleCmd, habitsDeleteCmd)
	rootCmd.AddCommand(habitsCmd)
}

func withHabits(cmd *cobra.Command, fn func(*habit.Tracker) error) error {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if err := fn(rt.habits); err != nil {
		return err
	}
	return printHabits(rt.habits)
}

func runHabitsList(cmd *cobra.Command, _ []string) error {
	return withHabits(cmd, func(*habit.Tracker) error { return nil })
}

func runHabitsAdd(cmd *cobra.Command, args []string) error {
	return withHabits(cmd, func(t *habit.Tracker) error {
		_, err := t.Add(strings.Join(args, " "), model.Category(flagHabitCategory))
		return err
	})
}

func runHabitsToggle(cmd *cobra.Command, args []string) error {
	return withHabits(cmd, func(t *habit.Tracker) error {
		for _, id := range args {
			if _, err := t.Toggle(id); err != nil {
				return fmt.Errorf("toggle %s: %w", id, err)
			}
		}
		return nil
	})
}

func runHabitsDelete(cmd *cobra.Command, args []string) error {
	return withHabits(cmd, func(t *habit.Tracker) error {
		for _, id := range args {
			if err := t.Delete(id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
		}
		return nil
	})
}

func printHabits(t *habit.Tracker) error {
	habits, err := t.List()
	if err != nil {
		return err
	}
	p, err := t.Progress()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("HABIT HARIAN"))
	fmt.Println()

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		check := "[ ]"
		if h.Completed {
			check = "[✓]"
		}
		name := cli.Truncate(h.Name, 40)
		if h.Custom {
			name += " ✎"
		}
		rows = append(rows, []string{h.ID, check, name, h.Category.Label()})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "", "Kebiasaan", "Kategori"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println(cli.RenderProgressBar(p.Completed, p.Total, 30))
	fmt.Printf("  %d%% selesai\n\n", p.Percent)

	for _, c := range model.Categories {
		done, total := 0, 0
		for _, h := range habits {
			if h.Category == c {
				total++
				if h.Completed {
					done++
				}
			}
		}
		label := fmt.Sprintf("%-10s %d/%d", c.Label(), done, total)
		fmt.Println(cli.RenderHorizontalBar(label, float64(done), float64(total), 20))
	}
	return nil
}
