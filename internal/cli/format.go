// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimals, thousands separators and
// the currency code.
// e.g., 1234.5 -> "1,234.50 BGN"
func FormatMoney(d decimal.Decimal, currency string) string {
	s := FormatAmount(d)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatAmount formats an amount with two decimals and thousands separators.
func FormatAmount(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err == nil {
		intPart = FormatNumber(n)
	}

	out := intPart + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatSignedMoney formats an amount signed by transaction kind:
// "+" for income, "-" for expense.
func FormatSignedMoney(d decimal.Decimal, kind model.Kind, currency string) string {
	sign := "+"
	if kind == model.Expense {
		sign = "-"
	}
	return sign + FormatMoney(d, currency)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate renders an ISO date as "02 Jan 2006".
// Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := ledger.ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}

// FormatDays formats a day count with the right plural.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatKind returns the display label for a transaction kind.
func FormatKind(k model.Kind) string {
	switch k {
	case model.Income:
		return "Income"
	case model.Expense:
		return "Expense"
	default:
		return "???"
	}
}

// ShortID returns the first block of a UUID for table display.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
