package cmd

import (
	"context"
	"fmt"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balances and daily budget",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return err
		}

		if len(snap.Transactions) == 0 && len(snap.PlannedExpenses) == 0 {
			fmt.Println("\n  No transactions yet.")
			fmt.Println("  Record one with `kasa add`, or open the dashboard with `kasa tui`.")
			return nil
		}

		sum, saved := summarize(snap)
		cur := cfg.General.Currency

		windowStr := fmt.Sprintf("%s → %s", sum.Window.StartDate, sum.Window.EndDate)
		if !saved {
			windowStr += " (default)"
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("KASA  Summary"))
		fmt.Println()

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Income", cli.FormatMoney(sum.TotalIncome, cur)},
				{"Expenses", cli.FormatMoney(sum.TotalExpenses, cur)},
				{"Balance", cli.FormatMoney(sum.Balance, cur)},
				{"---"},
				{"Planned", cli.FormatMoney(sum.TotalPlanned, cur)},
				{"Available", cli.FormatMoney(sum.AvailableBalance, cur)},
				{"---"},
				{"Window", windowStr},
				{"Days", cli.FormatDays(sum.Days)},
				{"Daily budget", cli.FormatMoney(sum.DailyBudget, cur) + "/day"},
			},
		}))

		if !sum.AvailableBalance.IsPositive() {
			fmt.Println()
			fmt.Println(cli.RenderWarning("Nothing left to spend after planned expenses."))
		}
		return nil
	})
}
