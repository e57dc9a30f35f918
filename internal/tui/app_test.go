package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testApp(t *testing.T) App {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return App{
		cfg:     config.DefaultConfig(),
		log:     log,
		txState: txListState{sortBy: ledger.SortByDate},
		width:   120,
		height:  40,
	}
}

func testSnapshot() store.Snapshot {
	tx := func(id, amount string, kind model.Kind, cat, date string) model.Transaction {
		return model.Transaction{
			ID: id, Amount: decimal.RequireFromString(amount), Kind: kind,
			Category: cat, Date: date, Description: "x",
		}
	}
	return store.Snapshot{
		Transactions: []model.Transaction{
			tx("1", "1000", model.Income, "Salary", "2024-01-01"),
			tx("2", "200", model.Expense, "Food", "2024-01-02"),
			tx("3", "50", model.Expense, "Transport", "2024-01-03"),
		},
		PlannedExpenses: []model.PlannedExpense{
			{ID: "p1", Amount: decimal.RequireFromString("150"), Category: "Bills", DueDate: "2024-01-20"},
		},
		BudgetWindow: model.BudgetWindow{StartDate: "2024-01-01", EndDate: "2024-01-31"},
	}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	got, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return got, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLedgerLoadedComputesSummary(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})

	if !a.loaded {
		t.Fatal("app not marked loaded")
	}
	if !a.summary.Balance.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("Balance = %s, want 750", a.summary.Balance)
	}
	// (750 - 150) / 31
	want := decimal.NewFromInt(600).Div(decimal.NewFromInt(31))
	if !a.summary.DailyBudget.Equal(want) {
		t.Fatalf("DailyBudget = %s, want %s", a.summary.DailyBudget, want)
	}
	if len(a.categories) != 2 || a.categories[0].Category != "Food" {
		t.Fatalf("categories = %+v, want Food first", a.categories)
	}
	if a.visibleTxs[0].ID != "3" {
		t.Fatalf("first visible = %s, want newest (3)", a.visibleTxs[0].ID)
	}
}

func TestUnsavedWindowUsesDefault(t *testing.T) {
	snap := testSnapshot()
	snap.BudgetWindow = model.BudgetWindow{}
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: snap})

	if a.window.StartDate != model.Today() {
		t.Fatalf("window start = %s, want today", a.window.StartDate)
	}
	if a.summary.Days != 31 {
		t.Fatalf("Days = %d, want 31 for a 30-day default window", a.summary.Days)
	}
}

func TestInvalidWindowFallsBackToZero(t *testing.T) {
	snap := testSnapshot()
	snap.BudgetWindow = model.BudgetWindow{StartDate: "2024-01-01", EndDate: "soon"}
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: snap})

	if a.summaryErr == nil {
		t.Fatal("expected summary error")
	}
	if !a.summary.DailyBudget.IsZero() || a.summary.Days != 0 {
		t.Fatalf("fallback = %s/%d, want 0/0", a.summary.DailyBudget, a.summary.Days)
	}
	if !strings.Contains(a.renderBudgetBody(), "invalid date") {
		t.Fatal("budget card should warn about the invalid date")
	}
}

func TestTransactionsFilterAndSortKeys(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})
	a, _ = update(t, a, key("t"))
	if a.activeTab != tabTransactions {
		t.Fatalf("activeTab = %d, want transactions", a.activeTab)
	}

	a, _ = update(t, a, key("f"))
	if a.txState.kind != model.Expense || len(a.visibleTxs) != 2 {
		t.Fatalf("after f: kind=%q visible=%d, want expense/2", a.txState.kind, len(a.visibleTxs))
	}
	a, _ = update(t, a, key("f"))
	if a.txState.kind != model.Income || len(a.visibleTxs) != 1 {
		t.Fatalf("after ff: kind=%q visible=%d, want income/1", a.txState.kind, len(a.visibleTxs))
	}
	a, _ = update(t, a, key("f"))
	if a.txState.kind != "" || len(a.visibleTxs) != 3 {
		t.Fatalf("after fff: kind=%q visible=%d, want all/3", a.txState.kind, len(a.visibleTxs))
	}

	a, _ = update(t, a, key("s"))
	if a.visibleTxs[0].ID != "1" {
		t.Fatalf("amount desc first = %s, want 1", a.visibleTxs[0].ID)
	}
	a, _ = update(t, a, key("r"))
	if a.visibleTxs[0].ID != "3" {
		t.Fatalf("amount asc first = %s, want 3", a.visibleTxs[0].ID)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})
	a.activeTab = tabTransactions

	a, cmd := update(t, a, key("d"))
	if !a.txState.confirmDelete || cmd != nil {
		t.Fatal("d should ask for confirmation without deleting")
	}
	a, cmd = update(t, a, key("n"))
	if a.txState.confirmDelete || cmd != nil {
		t.Fatal("n should cancel the delete")
	}

	a, _ = update(t, a, key("d"))
	_, cmd = update(t, a, key("y"))
	if cmd == nil {
		t.Fatal("y should start the delete")
	}
}

func TestCursorClampsToList(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})
	a.activeTab = tabTransactions

	for range 10 {
		a, _ = update(t, a, key("j"))
	}
	if a.txState.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", a.txState.cursor)
	}
	a, _ = update(t, a, key("g"))
	if a.txState.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", a.txState.cursor)
	}
}

func TestSubmitInvalidTransactionFlashes(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})
	a.txVals = &TransactionValues{Kind: model.Expense, Amount: "-5", Category: "Food", Date: "2024-01-05"}

	if cmd := a.submitForm(formTransaction); cmd != nil {
		t.Fatal("invalid input should not reach the store")
	}
	if !a.flashWarn || !strings.Contains(a.flash, "amount") {
		t.Fatalf("flash = %q (warn=%v), want amount warning", a.flash, a.flashWarn)
	}
}

func TestSubmitInvertedWindowFlashes(t *testing.T) {
	a := testApp(t)
	a.winVals = &WindowValues{Start: "2024-02-01", End: "2024-01-01"}
	if cmd := a.submitForm(formWindow); cmd != nil {
		t.Fatal("inverted window should be rejected")
	}
	if !a.flashWarn {
		t.Fatal("expected warning flash")
	}
}

func TestDailyExpenses(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	txs := []model.Transaction{
		{Amount: decimal.NewFromInt(5), Kind: model.Expense, Date: "2024-01-10"},
		{Amount: decimal.NewFromInt(7), Kind: model.Expense, Date: "2024-01-10"},
		{Amount: decimal.NewFromInt(3), Kind: model.Expense, Date: "2024-01-08"},
		{Amount: decimal.NewFromInt(100), Kind: model.Income, Date: "2024-01-10"},
		{Amount: decimal.NewFromInt(9), Kind: model.Expense, Date: "2023-12-01"},
	}
	got := dailyExpenses(txs, now, 3)
	want := []float64{3, 0, 12}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dailyExpenses = %v, want %v", got, want)
		}
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		cursor, n, h int
		start, end   int
	}{
		{0, 3, 10, 0, 3},
		{0, 20, 5, 0, 5},
		{7, 20, 5, 3, 8},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		s, e := listWindow(tt.cursor, tt.n, tt.h)
		if s != tt.start || e != tt.end {
			t.Fatalf("listWindow(%d,%d,%d) = %d,%d, want %d,%d", tt.cursor, tt.n, tt.h, s, e, tt.start, tt.end)
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := update(t, testApp(t), ledgerLoadedMsg{snap: testSnapshot()})
	for tab := range 5 {
		a.activeTab = tab
		if out := a.View(); out == "" {
			t.Fatalf("tab %d rendered empty", tab)
		}
	}
}
