package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kasa-ledger/kasa/internal/category"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kasa.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTx(amount string, kind model.Kind) model.Transaction {
	return model.Transaction{
		ID:          model.NewID(),
		Amount:      decimal.RequireFromString(amount),
		Description: "test",
		Category:    "Food",
		Date:        "2024-01-05",
		Kind:        kind,
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 0 {
		t.Fatalf("len(txs) = %d, want 0", len(txs))
	}
	w, err := s.Window(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if w.IsSet() {
		t.Fatalf("window = %+v, want unset", w)
	}
}

func TestAddDeleteTransaction(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	a := newTx("12.34", model.Expense)
	b := newTx("1000", model.Income)
	for _, tx := range []model.Transaction{a, b} {
		if err := s.AddTransaction(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 || txs[0].ID != a.ID || txs[1].ID != b.ID {
		t.Fatalf("transactions = %+v, want [a b] in insertion order", txs)
	}
	if !txs[0].Amount.Equal(a.Amount) {
		t.Fatalf("amount = %s, want %s", txs[0].Amount, a.Amount)
	}

	if err := s.DeleteTransaction(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	txs, _ = s.Transactions(ctx)
	if len(txs) != 1 || txs[0].ID != b.ID {
		t.Fatalf("after delete = %+v, want only b", txs)
	}

	if err := s.DeleteTransaction(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing err = %v, want ErrNotFound", err)
	}
}

func TestPlannedExpenses(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	p := model.PlannedExpense{ID: model.NewID(), Amount: decimal.NewFromInt(150), Category: "Bills", DueDate: "2024-02-01"}
	if err := s.AddPlannedExpense(ctx, p); err != nil {
		t.Fatal(err)
	}
	planned, err := s.PlannedExpenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(planned) != 1 || planned[0].DueDate != "2024-02-01" {
		t.Fatalf("planned = %+v", planned)
	}
	if err := s.DeletePlannedExpense(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	planned, _ = s.PlannedExpenses(ctx)
	if len(planned) != 0 {
		t.Fatalf("planned after delete = %+v", planned)
	}
}

func TestWindowRoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	want := model.BudgetWindow{StartDate: "2024-01-01", EndDate: "2024-01-31"}
	if err := s.SetWindow(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Window(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("window = %+v, want %+v", got, want)
	}
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.AddTransaction(ctx, newTx("1", model.Expense))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != n {
		t.Fatalf("len(txs) = %d, want %d", len(txs), n)
	}
}

func TestExportImport(t *testing.T) {
	src := openTest(t)
	ctx := context.Background()

	_ = src.AddTransaction(ctx, newTx("5", model.Expense))
	_ = src.AddPlannedExpense(ctx, model.PlannedExpense{ID: "p1", Amount: decimal.NewFromInt(7), Category: "Bills", DueDate: "2024-03-01"})
	_ = src.SetWindow(ctx, model.BudgetWindow{StartDate: "2024-03-01", EndDate: "2024-03-31"})

	var buf bytes.Buffer
	if err := src.Export(ctx, &buf); err != nil {
		t.Fatal(err)
	}

	dst := openTest(t)
	snap, err := dst.Import(ctx, &buf, category.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Transactions) != 1 || len(snap.PlannedExpenses) != 1 {
		t.Fatalf("imported snapshot = %+v", snap)
	}

	got, err := dst.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.BudgetWindow.EndDate != "2024-03-31" || got.PlannedExpenses[0].ID != "p1" {
		t.Fatalf("restored snapshot = %+v", got)
	}
}

func TestImportLegacyNumericAmounts(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	doc := `{"transactions":[{"id":"a","amount":1000,"description":"pay","category":"Salary","date":"2024-01-01","type":"income"}],
		"plannedExpenses":[],"dailyBudgetParams":{"startDate":"","endDate":""}}`
	snap, err := s.Import(ctx, bytes.NewBufferString(doc), category.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !snap.Transactions[0].Amount.Equal(decimal.NewFromInt(1000)) || snap.Transactions[0].Kind != model.Income {
		t.Fatalf("decoded = %+v", snap.Transactions[0])
	}
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	if err := s.AddTransaction(ctx, newTx("5", model.Expense)); err != nil {
		t.Fatal(err)
	}

	doc := `{"transactions":[
		{"id":"a","amount":-50,"description":"x","category":"Food","date":"not-a-date","type":"bogus"},
		{"id":"a","amount":10,"description":"y","category":"Yachts","date":"2024-01-02","type":"expense"}],
		"plannedExpenses":[{"id":"","amount":0,"category":"Bills","dueDate":"2024-02-01"}],
		"dailyBudgetParams":{"startDate":"2024-13-01","endDate":""}}`
	_, err := s.Import(ctx, bytes.NewBufferString(doc), category.Default())

	var verr *entry.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Import error = %v, want ValidationError", err)
	}
	for _, field := range []string{
		"transactions[0].amount",
		"transactions[0].type",
		"transactions[0].date",
		"transactions[1].id",
		"transactions[1].category",
		"plannedExpenses[0].id",
		"plannedExpenses[0].amount",
		"dailyBudgetParams.startDate",
	} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing error for %s in %v", field, verr.Fields)
		}
	}

	txs, err := s.Transactions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("len(txs) = %d after rejected import, want 1", len(txs))
	}
}
