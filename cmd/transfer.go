package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the whole ledger as JSON (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ledger with a JSON export (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "-" {
		return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			return s.Export(ctx, os.Stdout)
		})
	}
	return exportFile(cmd.Context(), args[0])
}

func exportFile(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	err = writeAndClose(f, func(w io.Writer) error {
		return withStore(ctx, func(ctx context.Context, s *store.Store) error {
			return s.Export(ctx, w)
		})
	})
	if err != nil {
		return err
	}
	info("Exported ledger to %s", path)
	return nil
}

// writeAndClose runs write against wc and always closes it. The close error
// is returned when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing export file: %w", cerr)
	}
	return err
}

func runImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()
		in = f
	}

	return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
		snap, err := s.Import(ctx, in, cfg.Vocabulary())
		if err != nil {
			return err
		}
		info("Imported %d transactions and %d planned expenses",
			len(snap.Transactions), len(snap.PlannedExpenses))
		return nil
	})
}
