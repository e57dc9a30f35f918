// Package category holds the closed category vocabularies used to label
// transactions and planned expenses.
package category

import (
	"slices"
	"strings"

	"github.com/kasa-ledger/kasa/internal/model"
)

// Vocabulary is the fixed set of labels accepted for each transaction kind.
type Vocabulary struct {
	Expense []string
	Income  []string
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	return Vocabulary{
		Expense: []string{
			"Food",
			"Transport",
			"Bills",
			"Entertainment",
			"Health",
			"Education",
			"Clothes",
			"Gifts",
			"Other",
		},
		Income: []string{
			"Salary",
			"Fee",
			"Gift",
			"Dividends",
			"Rent",
			"Other",
		},
	}
}

// For returns the labels that apply to the given kind.
// Planned expenses use the expense list.
func (v Vocabulary) For(kind model.Kind) []string {
	if kind == model.Income {
		return v.Income
	}
	return v.Expense
}

// Contains reports whether label is a member of the list for kind.
// Matching ignores surrounding whitespace and letter case.
func (v Vocabulary) Contains(kind model.Kind, label string) bool {
	_, ok := v.Canonical(kind, label)
	return ok
}

// Canonical returns the vocabulary spelling of label.
func (v Vocabulary) Canonical(kind model.Kind, label string) (string, bool) {
	label = strings.TrimSpace(label)
	i := slices.IndexFunc(v.For(kind), func(s string) bool {
		return strings.EqualFold(s, label)
	})
	if i < 0 {
		return "", false
	}
	return v.For(kind)[i], true
}

// Empty reports whether neither list has any labels.
func (v Vocabulary) Empty() bool {
	return len(v.Expense) == 0 && len(v.Income) == 0
}
