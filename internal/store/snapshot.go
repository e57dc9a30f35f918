package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kasa-ledger/kasa/internal/category"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/model"
)

// Snapshot is every slot at one point in time. Its JSON layout uses the slot
// names as keys, so an export can be read back by Import.
type Snapshot struct {
	Transactions    []model.Transaction    `json:"transactions"`
	PlannedExpenses []model.PlannedExpense `json:"plannedExpenses"`
	BudgetWindow    model.BudgetWindow     `json:"dailyBudgetParams"`
}

// Snapshot reads all slots in one transaction.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var snap Snapshot
	if _, err := readSlot(ctx, tx, SlotTransactions, &snap.Transactions); err != nil {
		return Snapshot{}, err
	}
	if _, err := readSlot(ctx, tx, SlotPlannedExpenses, &snap.PlannedExpenses); err != nil {
		return Snapshot{}, err
	}
	if _, err := readSlot(ctx, tx, SlotBudgetWindow, &snap.BudgetWindow); err != nil {
		return Snapshot{}, err
	}
	return snap, tx.Commit()
}

// Restore replaces every slot with the contents of snap.
func (s *Store) Restore(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Transactions == nil {
		snap.Transactions = []model.Transaction{}
	}
	if snap.PlannedExpenses == nil {
		snap.PlannedExpenses = []model.PlannedExpense{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeSlot(ctx, tx, SlotTransactions, snap.Transactions); err != nil {
		return err
	}
	if err := writeSlot(ctx, tx, SlotPlannedExpenses, snap.PlannedExpenses); err != nil {
		return err
	}
	if err := writeSlot(ctx, tx, SlotBudgetWindow, snap.BudgetWindow); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.log.WithField("transactions", len(snap.Transactions)).
		WithField("planned", len(snap.PlannedExpenses)).
		Info("snapshot restored")
	return nil
}

// Export writes the current snapshot to w as indented JSON.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Import reads a snapshot from r and restores it. Every record must pass the
// same checks as a newly entered one; categories are checked against vocab
// when it has labels. Nothing is written when any record is rejected.
func (s *Store) Import(ctx context.Context, r io.Reader, vocab category.Vocabulary) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := entry.CheckRecords(snap.Transactions, snap.PlannedExpenses, snap.BudgetWindow, vocab); err != nil {
		return Snapshot{}, fmt.Errorf("checking snapshot: %w", err)
	}
	if err := s.Restore(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
