package ledger

import (
	"testing"

	"github.com/kasa-ledger/kasa/internal/model"
)

func TestFilterByKind(t *testing.T) {
	txs := []model.Transaction{
		tx("1", model.Income, "Salary"),
		tx("2", model.Expense, "Food"),
		tx("3", model.Expense, "Bills"),
	}
	if got := FilterByKind(txs, ""); len(got) != 3 {
		t.Fatalf("all len = %d, want 3", len(got))
	}
	if got := FilterByKind(txs, model.Expense); len(got) != 2 {
		t.Fatalf("expense len = %d, want 2", len(got))
	}
	if got := FilterByKind(txs, model.Income); len(got) != 1 || got[0].Category != "Salary" {
		t.Fatalf("income = %+v, want one Salary entry", got)
	}
}

func TestSortTransactions(t *testing.T) {
	a := tx("50", model.Expense, "Food")
	a.Date = "2024-02-01"
	b := tx("10", model.Expense, "Food")
	b.Date = "2024-03-01"
	c := tx("30", model.Income, "Salary")
	c.Date = "2024-01-01"
	txs := []model.Transaction{a, b, c}

	byDateDesc := SortTransactions(txs, SortByDate, false)
	if byDateDesc[0].Date != "2024-03-01" || byDateDesc[2].Date != "2024-01-01" {
		t.Fatalf("date desc order wrong: %s, %s, %s", byDateDesc[0].Date, byDateDesc[1].Date, byDateDesc[2].Date)
	}

	byAmountAsc := SortTransactions(txs, SortByAmount, true)
	if !byAmountAsc[0].Amount.Equal(dec("10")) || !byAmountAsc[2].Amount.Equal(dec("50")) {
		t.Fatalf("amount asc order wrong: %s, %s, %s", byAmountAsc[0].Amount, byAmountAsc[1].Amount, byAmountAsc[2].Amount)
	}

	if txs[0].ID != a.ID {
		t.Fatal("SortTransactions mutated its input")
	}
}

func TestSortPlanned(t *testing.T) {
	p1 := planned("1")
	p1.DueDate = "2024-05-01"
	p2 := planned("2")
	p2.DueDate = "2024-04-01"
	sorted := SortPlanned([]model.PlannedExpense{p1, p2})
	if sorted[0].DueDate != "2024-04-01" {
		t.Fatalf("first due = %s, want 2024-04-01", sorted[0].DueDate)
	}
}
