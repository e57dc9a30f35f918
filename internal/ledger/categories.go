package ledger

import (
	"sort"

	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

// CategoryTotals sums expense amounts per category, in order of first
// occurrence. Income transactions are ignored and categories with no expense
// are absent from the result.
func CategoryTotals(txs []model.Transaction) []model.CategoryTotal {
	idx := make(map[string]int)
	var totals []model.CategoryTotal
	grand := decimal.Zero

	for _, t := range txs {
		if t.Kind != model.Expense {
			continue
		}
		i, ok := idx[t.Category]
		if !ok {
			i = len(totals)
			idx[t.Category] = i
			totals = append(totals, model.CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
		totals[i].Count++
		grand = grand.Add(t.Amount)
	}

	if grand.IsPositive() {
		for i := range totals {
			share, _ := totals[i].Total.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
			totals[i].SharePercent = share
		}
	}
	return totals
}

// CategoryTotalsMap is CategoryTotals keyed by category label.
func CategoryTotalsMap(txs []model.Transaction) map[string]decimal.Decimal {
	totals := CategoryTotals(txs)
	m := make(map[string]decimal.Decimal, len(totals))
	for _, ct := range totals {
		m[ct.Category] = ct.Total
	}
	return m
}

// RankCategories returns a copy of totals sorted by amount, largest first.
func RankCategories(totals []model.CategoryTotal) []model.CategoryTotal {
	ranked := make([]model.CategoryTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	return ranked
}
