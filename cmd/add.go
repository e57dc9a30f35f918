package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"
	"github.com/kasa-ledger/kasa/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagIncome   bool
	flagAmount   string
	flagCategory string
	flagDate     string
	flagDesc     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense",
	Example: `  kasa add --amount 12.50 --category Food --desc "Lunch"
  kasa add --income --amount 2500 --category Salary
  kasa add            # interactive form`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&flagIncome, "income", false, "Record income instead of an expense")
	addCmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount, e.g. 12.50")
	addCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Category label")
	addCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Date as YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVarP(&flagDesc, "desc", "m", "", "Description")
	rootCmd.AddCommand(addCmd)
}

// interactive reports whether stdin and stdout are both terminals.
func interactive() bool {
	isTerm := func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return isTerm(os.Stdin.Fd()) && isTerm(os.Stdout.Fd())
}

// runForm runs f, reporting whether the user completed it.
func runForm(f *huh.Form) (bool, error) {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			info("Cancelled")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func runAdd(cmd *cobra.Command, _ []string) error {
	kind := model.Expense
	if flagIncome {
		kind = model.Income
	}
	vals := tui.TransactionValues{
		Kind:        kind,
		Amount:      flagAmount,
		Category:    flagCategory,
		Date:        flagDate,
		Description: flagDesc,
	}

	if vals.Amount == "" || vals.Category == "" {
		if !interactive() {
			return errors.New("--amount and --category are required when not running in a terminal")
		}
		ok, err := runForm(tui.NewTransactionForm(&vals, cfg.Vocabulary()))
		if err != nil || !ok {
			return err
		}
	}
	if vals.Date == "" {
		vals.Date = model.Today()
	}

	tx, err := entry.NewTransaction(vals.Input(), cfg.Vocabulary())
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		if err := s.AddTransaction(ctx, tx); err != nil {
			return err
		}
		fmt.Printf("  Added %s %s · %s · %s  [%s]\n",
			cli.FormatKind(tx.Kind),
			cli.FormatMoney(tx.Amount, cfg.General.Currency),
			tx.Category, tx.Date, cli.ShortID(tx.ID))
		return nil
	})
}
