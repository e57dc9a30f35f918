package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction by id or unique id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

// resolveID matches arg against ids exactly or as a unique prefix.
func resolveID(ids []string, arg string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", store.ErrNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func runRm(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		txs, err := s.Transactions(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, len(txs))
		for i, tx := range txs {
			ids[i] = tx.ID
		}

		id, err := resolveID(ids, args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteTransaction(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("transaction %s was already deleted", id)
			}
			return err
		}
		fmt.Printf("  Deleted transaction %s\n", id)
		return nil
	})
}
