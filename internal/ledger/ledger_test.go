package ledger

import (
	"errors"
	"testing"

	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(amount string, kind model.Kind, category string) model.Transaction {
	return model.Transaction{
		ID:       model.NewID(),
		Amount:   dec(amount),
		Category: category,
		Date:     "2024-01-05",
		Kind:     kind,
	}
}

func planned(amount string) model.PlannedExpense {
	return model.PlannedExpense{ID: model.NewID(), Amount: dec(amount), Category: "Bills", DueDate: "2024-01-20"}
}

func TestTotals_Scenario(t *testing.T) {
	txs := []model.Transaction{
		tx("1000", model.Income, "Salary"),
		tx("300", model.Expense, "Food"),
		tx("200", model.Expense, "Food"),
	}

	if got := TotalIncome(txs); !got.Equal(dec("1000")) {
		t.Fatalf("TotalIncome = %s, want 1000", got)
	}
	if got := TotalExpenses(txs); !got.Equal(dec("500")) {
		t.Fatalf("TotalExpenses = %s, want 500", got)
	}
	balance := TotalIncome(txs).Sub(TotalExpenses(txs))
	if !balance.Equal(dec("500")) {
		t.Fatalf("balance = %s, want 500", balance)
	}

	totals := CategoryTotalsMap(txs)
	if len(totals) != 1 {
		t.Fatalf("category count = %d, want 1", len(totals))
	}
	if !totals["Food"].Equal(dec("500")) {
		t.Fatalf("Food = %s, want 500", totals["Food"])
	}
}

func TestTotals_Empty(t *testing.T) {
	if !TotalIncome(nil).IsZero() {
		t.Fatal("TotalIncome(nil) not zero")
	}
	if !TotalExpenses(nil).IsZero() {
		t.Fatal("TotalExpenses(nil) not zero")
	}
	if !TotalPlanned(nil).IsZero() {
		t.Fatal("TotalPlanned(nil) not zero")
	}
}

func TestTotals_KindsDoNotMix(t *testing.T) {
	txs := []model.Transaction{
		tx("10.10", model.Expense, "Food"),
		tx("0.20", model.Income, "Gift"),
		tx("5", model.Expense, "Transport"),
		tx("0.10", model.Income, "Salary"),
	}
	if got := TotalIncome(txs); !got.Equal(dec("0.30")) {
		t.Fatalf("TotalIncome = %s, want 0.30", got)
	}
	if got := TotalExpenses(txs); !got.Equal(dec("15.10")) {
		t.Fatalf("TotalExpenses = %s, want 15.10", got)
	}
}

func TestTotals_NoFloatDrift(t *testing.T) {
	var txs []model.Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, tx("0.1", model.Expense, "Food"))
	}
	if got := TotalExpenses(txs); !got.Equal(dec("1")) {
		t.Fatalf("TotalExpenses = %s, want exactly 1", got)
	}
}

func TestTotalPlanned_OrderIndependent(t *testing.T) {
	a := []model.PlannedExpense{planned("12.34"), planned("0.66"), planned("100")}
	b := []model.PlannedExpense{a[2], a[0], a[1]}
	if !TotalPlanned(a).Equal(TotalPlanned(b)) {
		t.Fatalf("TotalPlanned differs across permutations: %s vs %s", TotalPlanned(a), TotalPlanned(b))
	}
	if !TotalPlanned(a).Equal(dec("113")) {
		t.Fatalf("TotalPlanned = %s, want 113", TotalPlanned(a))
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-03-01", "2024-03-01", 1},
		{"2024-01-01", "2024-01-10", 10},
		{"2024-01-10", "2024-01-01", 10},
		{"2024-02-28", "2024-03-01", 3}, // leap year
		{"2023-12-31", "2024-01-01", 2},
		{"2024-01-01T00:00:00Z", "2024-01-02T06:00:00Z", 3},
		{"2024-01-01T00:00:00Z", "2024-01-02T00:00:00.5Z", 3},
		{"1700-01-01", "2024-01-01", 118339},
		{"2024-01-01", "9999-12-31", 2913174},
		{"9999-12-31", "0001-01-01", 3652059},
	}
	for _, tc := range cases {
		got, err := DaysBetween(tc.start, tc.end)
		if err != nil {
			t.Fatalf("DaysBetween(%q, %q) error: %v", tc.start, tc.end, err)
		}
		if got != tc.want {
			t.Fatalf("DaysBetween(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestDaysBetween_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"2024-01-01", "2024-12-31"},
		{"2025-06-15", "2025-06-14"},
		{"2020-02-29", "2021-03-01"},
	}
	for _, p := range pairs {
		ab, err := DaysBetween(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		ba, err := DaysBetween(p[1], p[0])
		if err != nil {
			t.Fatal(err)
		}
		if ab != ba {
			t.Fatalf("DaysBetween not symmetric for %v: %d vs %d", p, ab, ba)
		}
	}
}

func TestDaysBetween_InvalidDate(t *testing.T) {
	for _, in := range [][2]string{
		{"", "2024-01-01"},
		{"2024-01-01", "not-a-date"},
		{"2024-13-01", "2024-01-01"},
		{"2024-02-30", "2024-03-01"},
	} {
		_, err := DaysBetween(in[0], in[1])
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("DaysBetween(%q, %q) err = %v, want ErrInvalidDate", in[0], in[1], err)
		}
	}
}

func TestDailyBudget_Scenario(t *testing.T) {
	p := []model.PlannedExpense{planned("150")}
	balance := dec("500")

	available := balance.Sub(TotalPlanned(p))
	if !available.Equal(dec("350")) {
		t.Fatalf("available = %s, want 350", available)
	}

	got, err := DailyBudget(balance, p, "2024-01-01", "2024-01-10")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec("35")) {
		t.Fatalf("DailyBudget = %s, want 35", got)
	}
}

func TestDailyBudget_LongWindow(t *testing.T) {
	got, err := DailyBudget(dec("2913174"), nil, "2024-01-01", "9999-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec("1")) {
		t.Fatalf("DailyBudget = %s, want 1", got)
	}
}

func TestDailyBudget_NothingLeft(t *testing.T) {
	cases := []struct {
		balance string
		planned []model.PlannedExpense
	}{
		{"100", []model.PlannedExpense{planned("200")}},
		{"100", []model.PlannedExpense{planned("100")}},
		{"0", nil},
		{"-50", nil},
	}
	for _, tc := range cases {
		got, err := DailyBudget(dec(tc.balance), tc.planned, "2024-01-01", "2024-12-31")
		if err != nil {
			t.Fatal(err)
		}
		if !got.IsZero() {
			t.Fatalf("DailyBudget(balance=%s) = %s, want 0", tc.balance, got)
		}
	}
}

func TestDailyBudget_NoPlanned(t *testing.T) {
	balance := dec("100")
	days, err := DaysBetween("2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatal(err)
	}
	got, err := DailyBudget(balance, nil, "2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatal(err)
	}
	want := balance.Div(decimal.NewFromInt(int64(days)))
	if !got.Equal(want) {
		t.Fatalf("DailyBudget = %s, want %s", got, want)
	}
}

func TestDailyBudget_InvalidDatePropagates(t *testing.T) {
	_, err := DailyBudget(dec("100"), nil, "2024-01-01", "bogus")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestSummarize(t *testing.T) {
	txs := []model.Transaction{
		tx("1000", model.Income, "Salary"),
		tx("500", model.Expense, "Food"),
	}
	p := []model.PlannedExpense{planned("150")}

	s, err := Summarize(txs, p, model.BudgetWindow{StartDate: "2024-01-01", EndDate: "2024-01-10"})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Balance.Equal(dec("500")) {
		t.Fatalf("Balance = %s, want 500", s.Balance)
	}
	if !s.AvailableBalance.Equal(dec("350")) {
		t.Fatalf("AvailableBalance = %s, want 350", s.AvailableBalance)
	}
	if s.Days != 10 {
		t.Fatalf("Days = %d, want 10", s.Days)
	}
	if !s.DailyBudget.Equal(dec("35")) {
		t.Fatalf("DailyBudget = %s, want 35", s.DailyBudget)
	}
}

func TestSummarize_UnsetWindow(t *testing.T) {
	txs := []model.Transaction{tx("1000", model.Income, "Salary")}
	s, err := Summarize(txs, nil, model.BudgetWindow{StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("unexpected error for incomplete window: %v", err)
	}
	if s.Days != 0 || !s.DailyBudget.IsZero() {
		t.Fatalf("Days=%d DailyBudget=%s, want 0/0", s.Days, s.DailyBudget)
	}
}

func TestSummarize_InvalidWindow(t *testing.T) {
	txs := []model.Transaction{tx("1000", model.Income, "Salary")}
	s, err := Summarize(txs, nil, model.BudgetWindow{StartDate: "2024-01-01", EndDate: "01/10/2024"})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
	if !s.Balance.Equal(dec("1000")) {
		t.Fatalf("Balance = %s, want 1000 even on window error", s.Balance)
	}
}
