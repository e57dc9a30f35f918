package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/logging"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagQuiet    bool
	flagLogLevel string
	flagEnvFile  string
)

var (
	cfg config.Config
	log = logging.New("", os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:           "kasa",
	Short:         "Personal finance ledger",
	Long:          "Track income, expenses and planned expenses, and see what you can spend per day.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadSettings()
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default: data dir from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Load environment overrides from this file if present")
}

// loadSettings loads environment overrides, config and the logger shared by
// all commands.
func loadSettings() error {
	if err := config.LoadEnv(flagEnvFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	log = logging.New(level, os.Stderr)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"config": config.Path(),
		"db":     dbPath(),
	}).Debug("configuration loaded")
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(cfg)
}

// openStore opens the ledger database for a command.
func openStore() (*store.Store, error) {
	s, err := store.Open(dbPath(), log)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return s, nil
}

// withStore opens the ledger, runs fn and closes it again.
func withStore(ctx context.Context, fn func(ctx context.Context, s *store.Store) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.WithError(cerr).Warn("closing ledger")
		}
	}()
	return fn(ctx, s)
}

// effectiveWindow returns the saved window or the default one.
func effectiveWindow(w model.BudgetWindow) (model.BudgetWindow, bool) {
	if w.IsSet() {
		return w, true
	}
	return defaultWindow(), false
}

// summarize derives the summary, falling back to a zero daily budget when
// the window holds an invalid date.
func summarize(snap store.Snapshot) (model.Summary, bool) {
	window, saved := effectiveWindow(snap.BudgetWindow)
	sum, err := ledger.Summarize(snap.Transactions, snap.PlannedExpenses, window)
	if errors.Is(err, ledger.ErrInvalidDate) {
		log.WithError(err).Warn("budget window unusable; run `kasa budget set` to fix it")
	}
	return sum, saved
}

// info prints an informational line unless --quiet is set.
func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
