package ledger

import (
	"math"
	"sort"

	"github.com/kasa-ledger/kasa/internal/model"
)

// SortField selects the ordering key for transaction lists.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// FilterByKind returns transactions of the given kind. An empty kind keeps all.
func FilterByKind(txs []model.Transaction, kind model.Kind) []model.Transaction {
	if kind == "" {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if t.Kind == kind {
			result = append(result, t)
		}
	}
	return result
}

// SortTransactions returns a sorted copy of txs.
func SortTransactions(txs []model.Transaction, by SortField, ascending bool) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)

	less := func(a, b model.Transaction) bool {
		if by == SortByAmount {
			return a.Amount.LessThan(b.Amount)
		}
		return dateKey(a.Date) < dateKey(b.Date)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// SortPlanned returns planned expenses ordered by due date, soonest first.
func SortPlanned(planned []model.PlannedExpense) []model.PlannedExpense {
	sorted := make([]model.PlannedExpense, len(planned))
	copy(sorted, planned)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateKey(sorted[i].DueDate) < dateKey(sorted[j].DueDate)
	})
	return sorted
}

// dateKey maps a date to a sortable unix timestamp; unparseable dates sort first.
func dateKey(s string) int64 {
	t, err := ParseDate(s)
	if err != nil {
		return math.MinInt64
	}
	return t.Unix()
}
