package tui

import (
	"fmt"
	"strings"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/tui/components"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// listRow is one pre-formatted row of a ledger list.
type listRow struct {
	date     string
	kind     string
	category string
	desc     string
	amount   string
	expense  bool
}

// listWindow returns the [start, end) slice of n rows that keeps cursor
// visible in a viewport of height rows.
func listWindow(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, start + height
}

// renderList renders rows as a selectable table inside a content card.
func renderList(title string, rows []listRow, cursor, cw, viewH int, showKind bool, empty string) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	if len(rows) == 0 {
		return components.ContentCard(title, mutedStyle.Render(empty), cw)
	}

	dateW, kindW, catW, amtW := len("Date"), 0, len("Category"), len("Amount")
	if showKind {
		kindW = len("Expense")
	}
	for _, r := range rows {
		dateW = max(dateW, len(r.date))
		catW = max(catW, lipgloss.Width(r.category))
		amtW = max(amtW, len(r.amount))
	}
	catW = min(catW, 18)
	gaps := 3
	if showKind {
		gaps = 4
	}
	descW := max(innerW-dateW-kindW-catW-amtW-gaps*2, 8)

	format := func(r listRow) []string {
		cols := []string{fmt.Sprintf("%-*s", dateW, r.date)}
		if showKind {
			cols = append(cols, fmt.Sprintf("%-*s", kindW, r.kind))
		}
		cols = append(cols,
			fmt.Sprintf("%-*s", catW, truncStr(r.category, catW)),
			fmt.Sprintf("%-*s", descW, truncStr(r.desc, descW)),
			fmt.Sprintf("%*s", amtW, r.amount))
		return cols
	}

	header := listRow{date: "Date", kind: "Type", category: "Category", desc: "Description", amount: "Amount"}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.Join(format(header), "  ")))
	b.WriteString("\n")

	start, end := listWindow(cursor, len(rows), viewH-4)
	for i := start; i < end; i++ {
		cols := format(rows[i])
		if i == cursor {
			line := strings.Join(cols, "  ")
			pad := max(innerW-lipgloss.Width(line), 0)
			b.WriteString(selStyle.Render(line + strings.Repeat(" ", pad)))
		} else {
			amt := cols[len(cols)-1]
			amtStyle := incomeStyle
			if rows[i].expense {
				amtStyle = expenseStyle
			}
			b.WriteString(rowStyle.Render(strings.Join(cols[:len(cols)-1], "  ") + "  "))
			b.WriteString(amtStyle.Render(amt))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if end-start < len(rows) {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(rows))))
	}

	return components.ContentCard(title, b.String(), cw)
}

func (a App) renderTransactionsTab(cw, h int) string {
	rows := make([]listRow, 0, len(a.visibleTxs))
	for _, tx := range a.visibleTxs {
		rows = append(rows, listRow{
			date:     tx.Date,
			kind:     cli.FormatKind(tx.Kind),
			category: tx.Category,
			desc:     tx.Description,
			amount:   cli.FormatSignedMoney(tx.Amount, tx.Kind, a.cfg.General.Currency),
			expense:  tx.Kind == model.Expense,
		})
	}
	title := fmt.Sprintf("Transactions (%s)", kindLabel(a.txState.kind))
	return renderList(title, rows, a.txState.cursor, cw, h, true, "No transactions. Press a to add one.")
}

func (a App) renderPlannedTab(cw, h int) string {
	rows := make([]listRow, 0, len(a.sortedPlanned))
	for _, p := range a.sortedPlanned {
		rows = append(rows, listRow{
			date:     p.DueDate,
			category: p.Category,
			desc:     p.Description,
			amount:   a.money(p.Amount),
			expense:  true,
		})
	}
	title := "Planned Expenses · total " + a.money(a.summary.TotalPlanned)
	return renderList(title, rows, a.planState.cursor, cw, h, false, "Nothing planned. Press a to add a planned expense.")
}

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.categories) == 0 {
		return components.ContentCard("Expenses by Category", mutedStyle.Render("No expenses yet"), cw)
	}

	rows := make([]components.BarRow, 0, len(a.categories))
	for _, c := range a.categories {
		rows = append(rows, components.BarRow{
			Label: c.Category,
			Value: c.Total.InexactFloat64(),
			Note: fmt.Sprintf("%s  %6s  %3d×",
				a.money(c.Total), cli.FormatPercent(c.SharePercent), c.Count),
		})
	}

	var b strings.Builder
	b.WriteString(components.HBarList(rows, t.Accent, components.CardInnerWidth(cw)))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d categories · total %s",
		len(a.categories), a.money(a.summary.TotalExpenses))))

	return components.ContentCard("Expenses by Category", b.String(), cw)
}
