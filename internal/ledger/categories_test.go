package ledger

import (
	"testing"

	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

func TestCategoryTotals_ExpensesOnly(t *testing.T) {
	txs := []model.Transaction{
		tx("1000", model.Income, "Salary"),
		tx("40", model.Expense, "Transport"),
		tx("300", model.Expense, "Food"),
		tx("50", model.Income, "Food"),
		tx("200", model.Expense, "Food"),
	}

	totals := CategoryTotals(txs)
	if len(totals) != 2 {
		t.Fatalf("len = %d, want 2", len(totals))
	}
	if totals[0].Category != "Transport" || totals[1].Category != "Food" {
		t.Fatalf("order = [%s %s], want first-occurrence order [Transport Food]", totals[0].Category, totals[1].Category)
	}
	if !totals[1].Total.Equal(dec("500")) {
		t.Fatalf("Food = %s, want 500", totals[1].Total)
	}
	if totals[1].Count != 2 {
		t.Fatalf("Food count = %d, want 2", totals[1].Count)
	}
	if _, ok := CategoryTotalsMap(txs)["Salary"]; ok {
		t.Fatal("income-only category present in totals")
	}
}

func TestCategoryTotals_SumMatchesExpenses(t *testing.T) {
	txs := []model.Transaction{
		tx("12.5", model.Expense, "Food"),
		tx("7.25", model.Expense, "Health"),
		tx("99", model.Income, "Salary"),
		tx("0.25", model.Expense, "Food"),
		tx("3", model.Expense, "Gifts"),
	}

	sum := decimal.Zero
	var share float64
	for _, ct := range CategoryTotals(txs) {
		if !ct.Total.IsPositive() {
			t.Fatalf("category %s has non-positive total %s", ct.Category, ct.Total)
		}
		sum = sum.Add(ct.Total)
		share += ct.SharePercent
	}
	if !sum.Equal(TotalExpenses(txs)) {
		t.Fatalf("sum of category totals = %s, want %s", sum, TotalExpenses(txs))
	}
	if share < 99.999 || share > 100.001 {
		t.Fatalf("shares sum to %.4f, want 100", share)
	}
}

func TestCategoryTotals_Empty(t *testing.T) {
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Fatalf("CategoryTotals(nil) len = %d, want 0", len(got))
	}
	if got := CategoryTotals([]model.Transaction{tx("5", model.Income, "Salary")}); len(got) != 0 {
		t.Fatalf("income-only totals len = %d, want 0", len(got))
	}
}

func TestRankCategories(t *testing.T) {
	totals := CategoryTotals([]model.Transaction{
		tx("10", model.Expense, "Food"),
		tx("30", model.Expense, "Bills"),
		tx("20", model.Expense, "Health"),
	})
	ranked := RankCategories(totals)
	want := []string{"Bills", "Health", "Food"}
	for i, w := range want {
		if ranked[i].Category != w {
			t.Fatalf("ranked[%d] = %s, want %s", i, ranked[i].Category, w)
		}
	}
	if totals[0].Category != "Food" {
		t.Fatal("RankCategories mutated its input")
	}
}
