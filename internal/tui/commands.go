package tui

import (
	"context"
	"time"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/store"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ledgerLoadedMsg carries a fresh snapshot of every slot.
type ledgerLoadedMsg struct {
	snap store.Snapshot
	took time.Duration
	err  error
}

// savedMsg reports the outcome of a ledger mutation.
type savedMsg struct {
	flash string
	err   error
}

func loadLedgerCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		snap, err := s.Snapshot(ctx)
		return ledgerLoadedMsg{snap: snap, took: time.Since(start), err: err}
	}
}

// mutateCmd runs fn against the store in the background and reports the
// result with flash as the success message.
func mutateCmd(flash string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return savedMsg{flash: flash, err: fn(ctx)}
	}
}

func (a *App) startForm(kind formKind, f *huh.Form) tea.Cmd {
	a.form = f
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a *App) openTransactionForm() tea.Cmd {
	a.txVals = &TransactionValues{Kind: a.txState.kind}
	return a.startForm(formTransaction, NewTransactionForm(a.txVals, a.cfg.Vocabulary()))
}

func (a *App) openPlannedForm() tea.Cmd {
	a.planVals = &PlannedValues{}
	return a.startForm(formPlanned, NewPlannedForm(a.planVals, a.cfg.Vocabulary()))
}

func (a *App) openWindowForm() tea.Cmd {
	a.winVals = &WindowValues{Start: a.window.StartDate, End: a.window.EndDate}
	return a.startForm(formWindow, NewWindowForm(a.winVals))
}

func (a *App) openSetupForm() tea.Cmd {
	a.setupVals = &SetupValues{}
	return a.startForm(formSetup, NewSetupForm(a.setupVals, a.cfg))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form = nil
		a.formKind = formNone
		return a, a.submitForm(kind)
	case huh.StateAborted:
		a.form = nil
		a.formKind = formNone
		a.setFlash("Cancelled", false)
		return a, nil
	}

	return a, cmd
}

// submitForm validates the completed form's values and starts the matching
// store write.
func (a *App) submitForm(kind formKind) tea.Cmd {
	s := a.store
	vocab := a.cfg.Vocabulary()

	switch kind {
	case formTransaction:
		tx, err := entry.NewTransaction(a.txVals.Input(), vocab)
		if err != nil {
			a.setFlash(err.Error(), true)
			return nil
		}
		return mutateCmd("Transaction added", func(ctx context.Context) error {
			return s.AddTransaction(ctx, tx)
		})

	case formPlanned:
		p, err := entry.NewPlannedExpense(a.planVals.Input(), vocab)
		if err != nil {
			a.setFlash(err.Error(), true)
			return nil
		}
		return mutateCmd("Planned expense added", func(ctx context.Context) error {
			return s.AddPlannedExpense(ctx, p)
		})

	case formWindow:
		w, err := entry.NewWindow(a.winVals.Start, a.winVals.End)
		if err != nil {
			a.setFlash(err.Error(), true)
			return nil
		}
		return mutateCmd("Budget window saved", func(ctx context.Context) error {
			return s.SetWindow(ctx, w)
		})

	case formSetup:
		a.saveSetupConfig()
	}
	return nil
}

// saveSetupConfig applies the wizard choices to the on-disk config.
func (a *App) saveSetupConfig() {
	cfg := loadFileConfig()
	if err := ApplySetup(*a.setupVals, &cfg); err != nil {
		a.setFlash(err.Error(), true)
		return
	}
	if err := config.Save(cfg); err != nil {
		a.setFlash("Could not save config: "+err.Error(), true)
	} else {
		a.setFlash("Saved to "+config.Path(), false)
	}

	a.cfg.General.Currency = cfg.General.Currency
	a.cfg.General.WindowDays = cfg.General.WindowDays
	a.cfg.Appearance.Theme = cfg.Appearance.Theme
	theme.SetActive(cfg.Appearance.Theme)
	a.recompute()
}

// loadFileConfig loads the config file without environment overrides,
// returning defaults on error so the TUI can always persist settings.
func loadFileConfig() config.Config {
	cfg, err := config.LoadFrom(config.Path())
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
