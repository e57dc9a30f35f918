package cmd

import (
	"context"
	"fmt"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagKind  string
	flagSort  string
	flagAsc   bool
	flagLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagKind, "kind", "k", "all", "Filter: all, income or expense")
	listCmd.Flags().StringVarP(&flagSort, "sort", "s", "date", "Sort by: date or amount")
	listCmd.Flags().BoolVar(&flagAsc, "asc", false, "Ascending order (default: newest or largest first)")
	listCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Show at most n rows (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func parseKindFilter(s string) (model.Kind, error) {
	switch s {
	case "", "all":
		return "", nil
	case "income", "expense":
		return model.Kind(s), nil
	default:
		return "", fmt.Errorf("invalid --kind %q: want all, income or expense", s)
	}
}

func parseSortField(s string) (ledger.SortField, error) {
	switch f := ledger.SortField(s); f {
	case ledger.SortByDate, ledger.SortByAmount:
		return f, nil
	default:
		return "", fmt.Errorf("invalid --sort %q: want date or amount", s)
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	kind, err := parseKindFilter(flagKind)
	if err != nil {
		return err
	}
	sortBy, err := parseSortField(flagSort)
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		txs, err := s.Transactions(ctx)
		if err != nil {
			return err
		}

		shown := ledger.SortTransactions(ledger.FilterByKind(txs, kind), sortBy, flagAsc)
		if len(shown) == 0 {
			fmt.Println("\n  No transactions found.")
			return nil
		}
		if flagLimit > 0 && len(shown) > flagLimit {
			shown = shown[:flagLimit]
		}

		cur := cfg.General.Currency
		rows := make([][]string, 0, len(shown)+2)
		for _, tx := range shown {
			rows = append(rows, []string{
				cli.ShortID(tx.ID),
				tx.Date,
				cli.FormatKind(tx.Kind),
				tx.Category,
				tx.Description,
				cli.FormatSignedMoney(tx.Amount, tx.Kind, cur),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Net", "", "", "", "",
			cli.FormatMoney(ledger.TotalIncome(shown).Sub(ledger.TotalExpenses(shown)), cur)})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Transactions (%d)", len(shown)),
			Headers: []string{"ID", "Date", "Type", "Category", "Description", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}
