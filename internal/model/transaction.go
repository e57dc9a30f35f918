// Package model defines domain types for kasa ledgers.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes income from expense transactions.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// DateLayout is the ISO calendar date format used for every stored date.
const DateLayout = "2006-01-02"

// Transaction is one recorded income or expense event.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Kind        Kind            `json:"type"`
}

// PlannedExpense is an anticipated expense that has not happened yet.
type PlannedExpense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	DueDate     string          `json:"dueDate"`
}

// NewID returns a unique opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// Today returns the current local calendar date in ISO form.
func Today() string {
	return time.Now().Format(DateLayout)
}
