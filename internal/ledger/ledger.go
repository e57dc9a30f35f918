// Package ledger computes balances, category totals, and the daily budget
// from immutable snapshots of transactions and planned expenses.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInvalidDate is returned when a date string is not a calendar date.
var ErrInvalidDate = errors.New("invalid date")

const secondsPerDay = 24 * 60 * 60

// TotalIncome sums the amounts of all income transactions.
func TotalIncome(txs []model.Transaction) decimal.Decimal {
	return sumKind(txs, model.Income)
}

// TotalExpenses sums the amounts of all expense transactions.
func TotalExpenses(txs []model.Transaction) decimal.Decimal {
	return sumKind(txs, model.Expense)
}

func sumKind(txs []model.Transaction, kind model.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Kind == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// TotalPlanned sums the amounts of all planned expenses.
func TotalPlanned(planned []model.PlannedExpense) decimal.Decimal {
	total := decimal.Zero
	for _, p := range planned {
		total = total.Add(p.Amount)
	}
	return total
}

// ParseDate parses an ISO calendar date (or an RFC 3339 timestamp).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DaysBetween returns the inclusive number of days between start and end.
// The count is symmetric: swapping the arguments gives the same result, so
// callers that care about ordering must check it themselves.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}

	if e.Before(s) {
		s, e = e, s
	}
	// Whole seconds plus a nanosecond remainder; time.Duration would
	// saturate on spans longer than about 292 years.
	secs := e.Unix() - s.Unix()
	nanos := e.Nanosecond() - s.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos != 0 {
		days++
	}
	return int(days) + 1, nil
}

// DailyBudget spreads what is left after planned expenses evenly over the
// window. It is zero whenever nothing is left; it never goes negative.
func DailyBudget(balance decimal.Decimal, planned []model.PlannedExpense, start, end string) (decimal.Decimal, error) {
	days, err := DaysBetween(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	remaining := balance.Sub(TotalPlanned(planned))
	if !remaining.IsPositive() {
		return decimal.Zero, nil
	}
	return remaining.Div(decimal.NewFromInt(int64(days))), nil
}

// Summarize derives every summary value from a ledger snapshot.
// An incomplete window yields zero days and a zero daily budget; a complete
// window with an unparseable date returns ErrInvalidDate alongside the
// summary computed so far.
func Summarize(txs []model.Transaction, planned []model.PlannedExpense, window model.BudgetWindow) (model.Summary, error) {
	var s model.Summary
	s.TotalIncome = TotalIncome(txs)
	s.TotalExpenses = TotalExpenses(txs)
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	s.TotalPlanned = TotalPlanned(planned)
	s.AvailableBalance = s.Balance.Sub(s.TotalPlanned)
	s.Window = window
	s.DailyBudget = decimal.Zero

	if !window.IsSet() {
		return s, nil
	}

	days, err := DaysBetween(window.StartDate, window.EndDate)
	if err != nil {
		return s, err
	}
	budget, err := DailyBudget(s.Balance, planned, window.StartDate, window.EndDate)
	if err != nil {
		return s, err
	}
	s.Days = days
	s.DailyBudget = budget
	return s, nil
}
