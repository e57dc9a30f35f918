package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"
	"github.com/kasa-ledger/kasa/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagStart string
	flagEnd   string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the daily budget for the budget window",
	Args:  cobra.NoArgs,
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the budget window",
	Example: `  kasa budget set --start 2024-01-01 --end 2024-01-31
  kasa budget set --end 2024-02-15   # start defaults to today`,
	Args: cobra.NoArgs,
	RunE: runBudgetSet,
}

func init() {
	budgetSetCmd.Flags().StringVar(&flagStart, "start", "", "Window start as YYYY-MM-DD")
	budgetSetCmd.Flags().StringVar(&flagEnd, "end", "", "Window end as YYYY-MM-DD")
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func defaultWindow() model.BudgetWindow {
	return entry.DefaultWindow(time.Now(), cfg.General.WindowDays)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return err
		}
		sum, saved := summarize(snap)
		cur := cfg.General.Currency

		source := "saved"
		if !saved {
			source = fmt.Sprintf("default, today + %d days", cfg.General.WindowDays)
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Daily Budget",
			Headers: []string{"Budget", "Value"},
			Rows: [][]string{
				{"Start", sum.Window.StartDate},
				{"End", sum.Window.EndDate},
				{"Source", source},
				{"Days", cli.FormatDays(sum.Days)},
				{"---"},
				{"Balance", cli.FormatMoney(sum.Balance, cur)},
				{"Planned", cli.FormatMoney(sum.TotalPlanned, cur)},
				{"Remaining", cli.FormatMoney(sum.AvailableBalance, cur)},
				{"Per day", cli.FormatMoney(sum.DailyBudget, cur)},
			},
		}))

		if sum.TotalIncome.IsPositive() {
			spent := sum.TotalExpenses.Add(sum.TotalPlanned)
			fmt.Printf("\n  Committed %s\n",
				cli.RenderProgressBar(spent.InexactFloat64(), sum.TotalIncome.InexactFloat64(), 30))
		}
		return nil
	})
}

func runBudgetSet(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		current, err := s.Window(ctx)
		if err != nil {
			return err
		}
		current, _ = effectiveWindow(current)

		vals := tui.WindowValues{Start: flagStart, End: flagEnd}
		if vals.Start == "" && vals.End == "" {
			if !interactive() {
				return errors.New("--start or --end is required when not running in a terminal")
			}
			vals = tui.WindowValues{Start: current.StartDate, End: current.EndDate}
			ok, err := runForm(tui.NewWindowForm(&vals))
			if err != nil || !ok {
				return err
			}
		}
		if vals.Start == "" {
			vals.Start = model.Today()
		}
		if vals.End == "" {
			vals.End = current.EndDate
		}

		w, err := entry.NewWindow(vals.Start, vals.End)
		if err != nil {
			return err
		}
		if err := s.SetWindow(ctx, w); err != nil {
			return err
		}
		fmt.Printf("  Budget window set to %s → %s\n", w.StartDate, w.EndDate)
		return nil
	})
}
