// Package entry validates user input and builds immutable ledger records.
package entry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kasa-ledger/kasa/internal/category"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultDescription replaces an empty description.
const DefaultDescription = "No description"

// Field names used as keys in ValidationError.
const (
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldDueDate   = "dueDate"
	FieldKind      = "type"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
)

var (
	ErrInvalidAmount = errors.New("enter a valid amount (positive number)")
	ErrNoCategory    = errors.New("choose a category")
	ErrNoDate        = errors.New("choose a date")
)

// ValidationError maps input fields to the problem found with each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) add(field string, err error) {
	if _, exists := f[field]; !exists {
		f[field] = err.Error()
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// TransactionInput is raw form input for a new transaction.
type TransactionInput struct {
	Amount      string
	Description string
	Category    string
	Date        string
	Kind        model.Kind
}

// PlannedInput is raw form input for a new planned expense.
type PlannedInput struct {
	Amount      string
	Description string
	Category    string
	DueDate     string
}

// ParseAmount parses a positive decimal amount, accepting either a dot or a
// comma as the decimal separator, and rounds it to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// NewTransaction validates in and returns a transaction with a fresh ID.
// Categories are checked against vocab when it has labels for the kind.
func NewTransaction(in TransactionInput, vocab category.Vocabulary) (model.Transaction, error) {
	errs := fieldErrors{}

	if !in.Kind.Valid() {
		errs.add(FieldKind, fmt.Errorf("type must be %q or %q", model.Income, model.Expense))
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		errs.add(FieldAmount, err)
	}
	cat := checkCategory(errs, in.Category, in.Kind, vocab)
	checkDate(errs, FieldDate, in.Date)

	if err := errs.err(); err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:          model.NewID(),
		Amount:      amount,
		Description: describe(in.Description),
		Category:    cat,
		Date:        strings.TrimSpace(in.Date),
		Kind:        in.Kind,
	}, nil
}

// NewPlannedExpense validates in and returns a planned expense with a fresh ID.
func NewPlannedExpense(in PlannedInput, vocab category.Vocabulary) (model.PlannedExpense, error) {
	errs := fieldErrors{}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		errs.add(FieldAmount, err)
	}
	cat := checkCategory(errs, in.Category, model.Expense, vocab)
	checkDate(errs, FieldDueDate, in.DueDate)

	if err := errs.err(); err != nil {
		return model.PlannedExpense{}, err
	}
	return model.PlannedExpense{
		ID:          model.NewID(),
		Amount:      amount,
		Description: describe(in.Description),
		Category:    cat,
		DueDate:     strings.TrimSpace(in.DueDate),
	}, nil
}

// NewWindow validates a budget window. Both dates are required and the end
// may not precede the start.
func NewWindow(start, end string) (model.BudgetWindow, error) {
	errs := fieldErrors{}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	s, sok := checkDate(errs, FieldStartDate, start)
	e, eok := checkDate(errs, FieldEndDate, end)
	if sok && eok && e.Before(s) {
		errs.add(FieldEndDate, errors.New("end date must not be before the start date"))
	}

	if err := errs.err(); err != nil {
		return model.BudgetWindow{}, err
	}
	return model.BudgetWindow{StartDate: start, EndDate: end}, nil
}

// DefaultWindow returns the window used until one is saved: from the day of
// now through days calendar days later.
func DefaultWindow(now time.Time, days int) model.BudgetWindow {
	return model.BudgetWindow{
		StartDate: now.Format(model.DateLayout),
		EndDate:   now.AddDate(0, 0, days).Format(model.DateLayout),
	}
}

func checkCategory(errs fieldErrors, label string, kind model.Kind, vocab category.Vocabulary) string {
	label = strings.TrimSpace(label)
	if label == "" {
		errs.add(FieldCategory, ErrNoCategory)
		return ""
	}
	if len(vocab.For(kind)) == 0 {
		return label
	}
	canonical, ok := vocab.Canonical(kind, label)
	if !ok {
		errs.add(FieldCategory, fmt.Errorf("unknown %s category %q", kind, label))
		return ""
	}
	return canonical
}

func checkDate(errs fieldErrors, field, value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add(field, ErrNoDate)
		return time.Time{}, false
	}
	t, err := ledger.ParseDate(value)
	if err != nil {
		errs.add(field, err)
		return time.Time{}, false
	}
	return t, true
}

func describe(s string) string {
	if d := strings.TrimSpace(s); d != "" {
		return d
	}
	return DefaultDescription
}
