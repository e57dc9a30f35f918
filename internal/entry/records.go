package entry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kasa-ledger/kasa/internal/category"
	"github.com/kasa-ledger/kasa/internal/model"
)

var (
	ErrNoID        = errors.New("missing id")
	ErrDuplicateID = errors.New("duplicate id")
)

// CheckRecords applies the creation checks to records that arrive already
// built, such as an imported ledger. IDs must be present and unique within
// each collection. Window dates may be empty but must parse when set.
// Field keys are prefixed with the collection and index, e.g.
// "transactions[2].amount".
func CheckRecords(txs []model.Transaction, planned []model.PlannedExpense, w model.BudgetWindow, vocab category.Vocabulary) error {
	errs := fieldErrors{}

	seen := make(map[string]bool, len(txs))
	for i, tx := range txs {
		prefix := fmt.Sprintf("transactions[%d].", i)
		checkID(errs, prefix, tx.ID, seen)
		if !tx.Kind.Valid() {
			errs.add(prefix+FieldKind, fmt.Errorf("type must be %q or %q", model.Income, model.Expense))
		}
		if !tx.Amount.IsPositive() {
			errs.add(prefix+FieldAmount, ErrInvalidAmount)
		}
		if tx.Kind.Valid() {
			checkLabel(errs, prefix, tx.Category, tx.Kind, vocab)
		}
		checkDate(errs, prefix+FieldDate, tx.Date)
	}

	seen = make(map[string]bool, len(planned))
	for i, p := range planned {
		prefix := fmt.Sprintf("plannedExpenses[%d].", i)
		checkID(errs, prefix, p.ID, seen)
		if !p.Amount.IsPositive() {
			errs.add(prefix+FieldAmount, ErrInvalidAmount)
		}
		checkLabel(errs, prefix, p.Category, model.Expense, vocab)
		checkDate(errs, prefix+FieldDueDate, p.DueDate)
	}

	if strings.TrimSpace(w.StartDate) != "" {
		checkDate(errs, "dailyBudgetParams."+FieldStartDate, w.StartDate)
	}
	if strings.TrimSpace(w.EndDate) != "" {
		checkDate(errs, "dailyBudgetParams."+FieldEndDate, w.EndDate)
	}

	return errs.err()
}

func checkID(errs fieldErrors, prefix, id string, seen map[string]bool) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		errs.add(prefix+"id", ErrNoID)
	case seen[id]:
		errs.add(prefix+"id", fmt.Errorf("%w %q", ErrDuplicateID, id))
	default:
		seen[id] = true
	}
}

func checkLabel(errs fieldErrors, prefix, label string, kind model.Kind, vocab category.Vocabulary) {
	sub := fieldErrors{}
	checkCategory(sub, label, kind, vocab)
	if msg, ok := sub[FieldCategory]; ok {
		errs[prefix+FieldCategory] = msg
	}
}
