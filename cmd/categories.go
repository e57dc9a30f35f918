package cmd

import (
	"context"
	"fmt"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/spf13/cobra"
)

var flagRank bool

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "Expense totals per category",
	Args:    cobra.NoArgs,
	RunE:    runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&flagRank, "rank", false, "Order by total instead of first use")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		txs, err := s.Transactions(ctx)
		if err != nil {
			return err
		}

		totals := ledger.CategoryTotals(txs)
		if len(totals) == 0 {
			fmt.Println("\n  No expenses recorded.")
			return nil
		}
		if flagRank {
			totals = ledger.RankCategories(totals)
		}

		cur := cfg.General.Currency
		rows := make([][]string, 0, len(totals)+2)
		for _, c := range totals {
			rows = append(rows, []string{
				c.Category,
				cli.FormatMoney(c.Total, cur),
				cli.FormatNumber(int64(c.Count)),
				cli.FormatPercent(c.SharePercent),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Total", cli.FormatMoney(ledger.TotalExpenses(txs), cur), "", ""})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Expenses by Category",
			Headers: []string{"Category", "Total", "Count", "Share"},
			Rows:    rows,
		}))

		fmt.Println()
		labelW, peak := 0, 0.0
		for _, c := range totals {
			labelW = max(labelW, len(c.Category))
			peak = max(peak, c.SharePercent)
		}
		for _, c := range totals {
			fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-*s", labelW, c.Category), c.SharePercent, peak, 40))
		}
		return nil
	})
}
