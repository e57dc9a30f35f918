package model

import "github.com/shopspring/decimal"

// Summary holds every value derived from a ledger snapshot.
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TotalPlanned     decimal.Decimal
	AvailableBalance decimal.Decimal

	Window      BudgetWindow
	Days        int // 0 when the window is not set
	DailyBudget decimal.Decimal
}

// CategoryTotal holds the summed expense amount for one category label.
type CategoryTotal struct {
	Category     string
	Total        decimal.Decimal
	Count        int
	SharePercent float64
}
