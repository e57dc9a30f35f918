package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kasa-ledger/kasa/internal/category"
	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// TransactionValues holds the raw field values bound to a transaction form.
type TransactionValues struct {
	Kind        model.Kind
	Amount      string
	Category    string
	Date        string
	Description string
}

// Input converts the form values to an entry input.
func (v TransactionValues) Input() entry.TransactionInput {
	return entry.TransactionInput{
		Amount:      v.Amount,
		Description: v.Description,
		Category:    v.Category,
		Date:        v.Date,
		Kind:        v.Kind,
	}
}

// PlannedValues holds the raw field values bound to a planned-expense form.
type PlannedValues struct {
	Amount      string
	Category    string
	DueDate     string
	Description string
}

// Input converts the form values to an entry input.
func (v PlannedValues) Input() entry.PlannedInput {
	return entry.PlannedInput{
		Amount:      v.Amount,
		Description: v.Description,
		Category:    v.Category,
		DueDate:     v.DueDate,
	}
}

// WindowValues holds the raw dates bound to a budget window form.
type WindowValues struct {
	Start string
	End   string
}

// SetupValues holds the choices collected by the setup wizard.
type SetupValues struct {
	Currency   string
	WindowDays string
	Theme      string
}

func validateAmount(s string) error {
	_, err := entry.ParseAmount(s)
	return err
}

func validateDate(s string) error {
	if s == "" {
		return entry.ErrNoDate
	}
	_, err := ledger.ParseDate(s)
	return err
}

func categoryOptions(labels []string) []huh.Option[string] {
	return huh.NewOptions(labels...)
}

// categoryField returns a select when the vocabulary has labels, and a free
// text input otherwise.
func categoryField(labels func() []string, bind any, value *string) huh.Field {
	if len(labels()) == 0 {
		return huh.NewInput().
			Title("Category").
			Value(value).
			Validate(func(s string) error {
				if s == "" {
					return entry.ErrNoCategory
				}
				return nil
			})
	}
	sel := huh.NewSelect[string]().Title("Category")
	if bind == nil {
		sel = sel.Options(categoryOptions(labels())...)
	} else {
		sel = sel.OptionsFunc(func() []huh.Option[string] {
			return categoryOptions(labels())
		}, bind)
	}
	return sel.Value(value)
}

// NewTransactionForm builds the form for recording a transaction.
func NewTransactionForm(vals *TransactionValues, vocab category.Vocabulary) *huh.Form {
	if vals.Kind == "" {
		vals.Kind = model.Expense
	}
	if vals.Date == "" {
		vals.Date = model.Today()
	}

	labels := func() []string {
		l := vocab.For(vals.Kind)
		if len(l) == 0 {
			// Select needs at least one option.
			l = vocab.For(model.Expense)
		}
		return l
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.Kind]().
				Title("Type").
				Options(
					huh.NewOption("Expense", model.Expense),
					huh.NewOption("Income", model.Income),
				).
				Value(&vals.Kind),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&vals.Amount).
				Validate(validateAmount),
		),
		huh.NewGroup(
			categoryField(labels, &vals.Kind, &vals.Category),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Value(&vals.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Description").
				Placeholder(entry.DefaultDescription).
				Value(&vals.Description),
		),
	).WithTheme(formTheme())
}

// NewPlannedForm builds the form for recording a planned expense.
func NewPlannedForm(vals *PlannedValues, vocab category.Vocabulary) *huh.Form {
	if vals.DueDate == "" {
		vals.DueDate = model.Today()
	}
	labels := func() []string { return vocab.Expense }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&vals.Amount).
				Validate(validateAmount),
			categoryField(labels, nil, &vals.Category),
			huh.NewInput().
				Title("Due date").
				Placeholder(model.DateLayout).
				Value(&vals.DueDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Description").
				Placeholder(entry.DefaultDescription).
				Value(&vals.Description),
		),
	).WithTheme(formTheme())
}

// NewWindowForm builds the form for choosing the budget window.
func NewWindowForm(vals *WindowValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder(model.DateLayout).
				Value(&vals.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Placeholder(model.DateLayout).
				Value(&vals.End).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					_, err := entry.NewWindow(vals.Start, s)
					return err
				}),
		),
	).WithTheme(formTheme())
}

// NewSetupForm builds the first-run wizard seeded from cfg.
func NewSetupForm(vals *SetupValues, cfg config.Config) *huh.Form {
	if vals.Currency == "" {
		vals.Currency = cfg.General.Currency
	}
	if vals.WindowDays == "" {
		vals.WindowDays = strconv.Itoa(cfg.General.WindowDays)
	}
	if vals.Theme == "" {
		vals.Theme = cfg.Appearance.Theme
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to kasa!").
				Description("Let's set up a few things.\n\n"),
			huh.NewInput().
				Title("Currency").
				Description("Three-letter code shown next to amounts.").
				CharLimit(3).
				Value(&vals.Currency).
				Validate(func(s string) error {
					if len(s) != 3 {
						return fmt.Errorf("currency must be a 3-letter code")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default budget window").
				Options(
					huh.NewOption("7 days", "7"),
					huh.NewOption("14 days", "14"),
					huh.NewOption("30 days", "30"),
					huh.NewOption("90 days", "90"),
				).
				Value(&vals.WindowDays),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(formTheme())
}

// ApplySetup copies the wizard choices into cfg.
func ApplySetup(vals SetupValues, cfg *config.Config) error {
	days, err := strconv.Atoi(vals.WindowDays)
	if err != nil || days < 1 {
		return fmt.Errorf("invalid window days %q", vals.WindowDays)
	}
	cfg.General.Currency = strings.ToUpper(vals.Currency)
	cfg.General.WindowDays = days
	cfg.Appearance.Theme = theme.ByName(vals.Theme).Name
	return cfg.Validate()
}

func formTheme() *huh.Theme {
	if theme.Active.Name == theme.Terminal.Name {
		return huh.ThemeBase()
	}
	return huh.ThemeCharm()
}
