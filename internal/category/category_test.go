package category

import (
	"testing"

	"github.com/kasa-ledger/kasa/internal/model"
)

func TestVocabularyContains(t *testing.T) {
	v := Default()

	cases := []struct {
		kind  model.Kind
		label string
		want  bool
	}{
		{model.Expense, "Food", true},
		{model.Expense, " food ", true},
		{model.Expense, "Salary", false},
		{model.Income, "Salary", true},
		{model.Income, "Food", false},
		{model.Income, "Other", true},
		{model.Expense, "", false},
	}
	for _, tc := range cases {
		if got := v.Contains(tc.kind, tc.label); got != tc.want {
			t.Errorf("Contains(%s, %q) = %v, want %v", tc.kind, tc.label, got, tc.want)
		}
	}
}

func TestVocabularyCanonical(t *testing.T) {
	got, ok := Default().Canonical(model.Expense, "TRANSPORT")
	if !ok || got != "Transport" {
		t.Fatalf("Canonical = %q, %v; want Transport, true", got, ok)
	}
}

func TestVocabularyEmpty(t *testing.T) {
	if Default().Empty() {
		t.Fatal("default vocabulary reported empty")
	}
	if !(Vocabulary{}).Empty() {
		t.Fatal("zero vocabulary not empty")
	}
}
