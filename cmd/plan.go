package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"
	"github.com/kasa-ledger/kasa/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagPlanAmount   string
	flagPlanCategory string
	flagPlanDue      string
	flagPlanDesc     string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage planned expenses",
	RunE:  runPlanList,
}

var planAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a planned expense",
	Args:  cobra.NoArgs,
	RunE:  runPlanAdd,
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List planned expenses by due date",
	Args:    cobra.NoArgs,
	RunE:    runPlanList,
}

var planRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a planned expense by id or unique id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanRm,
}

func init() {
	planAddCmd.Flags().StringVarP(&flagPlanAmount, "amount", "a", "", "Amount, e.g. 120")
	planAddCmd.Flags().StringVarP(&flagPlanCategory, "category", "c", "", "Expense category label")
	planAddCmd.Flags().StringVar(&flagPlanDue, "due", "", "Due date as YYYY-MM-DD (default: today)")
	planAddCmd.Flags().StringVarP(&flagPlanDesc, "desc", "m", "", "Description")

	planCmd.AddCommand(planAddCmd, planListCmd, planRmCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanAdd(cmd *cobra.Command, _ []string) error {
	vals := tui.PlannedValues{
		Amount:      flagPlanAmount,
		Category:    flagPlanCategory,
		DueDate:     flagPlanDue,
		Description: flagPlanDesc,
	}

	if vals.Amount == "" || vals.Category == "" {
		if !interactive() {
			return errors.New("--amount and --category are required when not running in a terminal")
		}
		ok, err := runForm(tui.NewPlannedForm(&vals, cfg.Vocabulary()))
		if err != nil || !ok {
			return err
		}
	}
	if vals.DueDate == "" {
		vals.DueDate = model.Today()
	}

	p, err := entry.NewPlannedExpense(vals.Input(), cfg.Vocabulary())
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		if err := s.AddPlannedExpense(ctx, p); err != nil {
			return err
		}
		fmt.Printf("  Planned %s · %s · due %s  [%s]\n",
			cli.FormatMoney(p.Amount, cfg.General.Currency), p.Category, p.DueDate, cli.ShortID(p.ID))
		return nil
	})
}

func runPlanList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		planned, err := s.PlannedExpenses(ctx)
		if err != nil {
			return err
		}
		if len(planned) == 0 {
			fmt.Println("\n  No planned expenses.")
			return nil
		}

		cur := cfg.General.Currency
		rows := make([][]string, 0, len(planned)+2)
		for _, p := range ledger.SortPlanned(planned) {
			rows = append(rows, []string{
				cli.ShortID(p.ID),
				p.DueDate,
				p.Category,
				p.Description,
				cli.FormatMoney(p.Amount, cur),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Total", "", "", "", cli.FormatMoney(ledger.TotalPlanned(planned), cur)})

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Planned Expenses (%d)", len(planned)),
			Headers: []string{"ID", "Due", "Category", "Description", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}

func runPlanRm(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		planned, err := s.PlannedExpenses(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, len(planned))
		for i, p := range planned {
			ids[i] = p.ID
		}

		id, err := resolveID(ids, args[0])
		if err != nil {
			return err
		}
		if err := s.DeletePlannedExpense(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted planned expense %s\n", id)
		return nil
	})
}
