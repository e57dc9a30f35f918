// Package store persists ledger collections in a SQLite-backed key-value
// table of named slots.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Slot names. They match the keys the data has always been stored under.
const (
	SlotTransactions    = "transactions"
	SlotPlannedExpenses = "plannedExpenses"
	SlotBudgetWindow    = "dailyBudgetParams"
)

// ErrNotFound is returned when deleting a record whose id is not stored.
var ErrNotFound = errors.New("record not found")

// Store is a key-value store of JSON documents.
// Mutations are serialized so concurrent adds and deletes never lose updates.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
	log  logrus.FieldLogger
}

// Open opens or creates the database at dbPath and applies migrations.
func Open(dbPath string, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	log.WithField("path", dbPath).Debug("store opened")
	return &Store{db: db, path: dbPath, log: log}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func readSlot(ctx context.Context, q queryer, slot string, v any) (bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT value FROM slots WHERE name = ?", slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding slot %s: %w", slot, err)
	}
	return true, nil
}

func writeSlot(ctx context.Context, e execer, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding slot %s: %w", slot, err)
	}
	_, err = e.ExecContext(ctx, `INSERT OR REPLACE INTO slots (name, value, updated_at)
		VALUES (?, ?, ?)`, slot, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}
	return nil
}

// Get decodes the named slot into v. It reports false if the slot is empty.
func (s *Store) Get(ctx context.Context, slot string, v any) (bool, error) {
	return readSlot(ctx, s.db, slot, v)
}

// Put replaces the named slot with the JSON encoding of v.
func (s *Store) Put(ctx context.Context, slot string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeSlot(ctx, s.db, slot, v)
}

// update performs a read-modify-write of one slot inside a transaction.
func update[T any](ctx context.Context, s *Store, slot string, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var items []T
	if _, err := readSlot(ctx, tx, slot, &items); err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	if err := writeSlot(ctx, tx, slot, items); err != nil {
		return err
	}
	return tx.Commit()
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i:i], items[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Transactions returns all stored transactions in insertion order.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	if _, err := s.Get(ctx, SlotTransactions, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// AddTransaction appends t to the transactions slot.
func (s *Store) AddTransaction(ctx context.Context, t model.Transaction) error {
	err := update(ctx, s, SlotTransactions, func(txs []model.Transaction) ([]model.Transaction, error) {
		return append(txs, t), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": t.ID, "type": t.Kind, "amount": t.Amount.String()}).Info("transaction added")
	return nil
}

// DeleteTransaction removes the transaction with the given id.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	err := update(ctx, s, SlotTransactions, func(txs []model.Transaction) ([]model.Transaction, error) {
		return removeByID(txs, id, func(t model.Transaction) string { return t.ID })
	})
	if err != nil {
		return err
	}
	s.log.WithField("id", id).Info("transaction deleted")
	return nil
}

// PlannedExpenses returns all stored planned expenses in insertion order.
func (s *Store) PlannedExpenses(ctx context.Context) ([]model.PlannedExpense, error) {
	var planned []model.PlannedExpense
	if _, err := s.Get(ctx, SlotPlannedExpenses, &planned); err != nil {
		return nil, err
	}
	return planned, nil
}

// AddPlannedExpense appends p to the planned expenses slot.
func (s *Store) AddPlannedExpense(ctx context.Context, p model.PlannedExpense) error {
	err := update(ctx, s, SlotPlannedExpenses, func(planned []model.PlannedExpense) ([]model.PlannedExpense, error) {
		return append(planned, p), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": p.ID, "amount": p.Amount.String()}).Info("planned expense added")
	return nil
}

// DeletePlannedExpense removes the planned expense with the given id.
func (s *Store) DeletePlannedExpense(ctx context.Context, id string) error {
	err := update(ctx, s, SlotPlannedExpenses, func(planned []model.PlannedExpense) ([]model.PlannedExpense, error) {
		return removeByID(planned, id, func(p model.PlannedExpense) string { return p.ID })
	})
	if err != nil {
		return err
	}
	s.log.WithField("id", id).Info("planned expense deleted")
	return nil
}

// Window returns the saved budget window, or the zero window if none is saved.
func (s *Store) Window(ctx context.Context) (model.BudgetWindow, error) {
	var w model.BudgetWindow
	if _, err := s.Get(ctx, SlotBudgetWindow, &w); err != nil {
		return model.BudgetWindow{}, err
	}
	return w, nil
}

// SetWindow saves the budget window.
func (s *Store) SetWindow(ctx context.Context, w model.BudgetWindow) error {
	if err := s.Put(ctx, SlotBudgetWindow, w); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"start": w.StartDate, "end": w.EndDate}).Info("budget window saved")
	return nil
}
