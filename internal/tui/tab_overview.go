package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/kasa-ledger/kasa/internal/cli"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/tui/components"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	sparkDays     = 30
	overviewLimit = 5
)

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, a.cfg.General.Currency)
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: Metric cards
	balanceColor := t.GreenBright
	if s.Balance.IsNegative() {
		balanceColor = t.Red
	}
	availColor := t.GreenBright
	if s.AvailableBalance.IsNegative() {
		availColor = t.Red
	}

	metrics := []components.Metric{
		{Label: "Income", Value: a.money(s.TotalIncome), Color: t.Green},
		{Label: "Expenses", Value: a.money(s.TotalExpenses), Color: t.Orange},
		{Label: "Balance", Value: a.money(s.Balance), Color: balanceColor},
		{Label: "Planned", Value: a.money(s.TotalPlanned), Delta: fmt.Sprintf("%d upcoming", len(a.planned))},
		{Label: "Available", Value: a.money(s.AvailableBalance), Color: availColor},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Daily budget + spending bars
	halves := components.LayoutRow(cw, 2)
	budgetCard := components.ContentCard("Daily Budget", a.renderBudgetBody(), halves[0])
	spendCard := components.ContentCard("Spending", a.renderSpendingBody(components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Daily Budget", a.renderBudgetBody(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Spending", a.renderSpendingBody(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{budgetCard, spendCard}))
	}
	b.WriteString("\n")

	// Row 3: Top categories + upcoming planned
	catCard := components.ContentCard("Top Categories", a.renderTopCategories(components.CardInnerWidth(halves[0])), halves[0])
	upCard := components.ContentCard("Upcoming", a.renderUpcoming(components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Top Categories", a.renderTopCategories(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Upcoming", a.renderUpcoming(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{catCard, upCard}))
	}

	return b.String()
}

func (a App) renderBudgetBody() string {
	t := theme.Active
	s := a.summary

	valueStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	b.WriteString(valueStyle.Render(a.money(s.DailyBudget) + " / day"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s to %s · %s",
		cli.FormatDate(a.window.StartDate), cli.FormatDate(a.window.EndDate), cli.FormatDays(s.Days))))

	switch {
	case a.summaryErr != nil:
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Window has an invalid date; press b to fix it"))
	case !s.AvailableBalance.IsPositive():
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Nothing left after planned expenses"))
	}
	return b.String()
}

func (a App) renderSpendingBody(innerW int) string {
	t := theme.Active
	s := a.summary

	barW := max(innerW-32, 10)
	spent, committed := 0.0, 0.0
	if s.TotalIncome.IsPositive() {
		spent = s.TotalExpenses.Div(s.TotalIncome).InexactFloat64()
		committed = s.TotalExpenses.Add(s.TotalPlanned).Div(s.TotalIncome).InexactFloat64()
	}

	var b strings.Builder
	b.WriteString(components.UsageBar("Spent", spent, "of income", 9, barW))
	b.WriteString("\n")
	b.WriteString(components.UsageBar("Committed", committed, "incl. planned", 9, barW))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	b.WriteString(labelStyle.Render(fmt.Sprintf("Last %dd ", sparkDays)))
	b.WriteString(components.Sparkline(dailyExpenses(a.txs, time.Now(), sparkDays), t.Orange))
	return b.String()
}

// dailyExpenses returns expense totals for each of the n days ending at now,
// oldest first.
func dailyExpenses(txs []model.Transaction, now time.Time, n int) []float64 {
	vals := make([]float64, n)
	index := make(map[string]int, n)
	for i := range n {
		index[now.AddDate(0, 0, i-(n-1)).Format(model.DateLayout)] = i
	}
	for _, tx := range txs {
		if tx.Kind != model.Expense {
			continue
		}
		d, err := ledger.ParseDate(tx.Date)
		if err != nil {
			continue
		}
		if i, ok := index[d.Format(model.DateLayout)]; ok {
			vals[i] += tx.Amount.InexactFloat64()
		}
	}
	return vals
}

func (a App) renderTopCategories(innerW int) string {
	t := theme.Active
	if len(a.categories) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses yet")
	}

	top := a.categories[:min(overviewLimit, len(a.categories))]
	rows := make([]components.BarRow, 0, len(top))
	for _, c := range top {
		rows = append(rows, components.BarRow{
			Label: c.Category,
			Value: c.Total.InexactFloat64(),
			Note:  cli.FormatPercent(c.SharePercent),
		})
	}
	return components.HBarList(rows, t.Accent, innerW)
}

func (a App) renderUpcoming(innerW int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	if len(a.sortedPlanned) == 0 {
		return dimStyle.Render("Nothing planned")
	}

	upcoming := a.sortedPlanned[:min(overviewLimit, len(a.sortedPlanned))]
	amountW := 0
	for _, p := range upcoming {
		amountW = max(amountW, len(a.money(p.Amount)))
	}
	descW := max(innerW-12-amountW-2, 4)

	lines := make([]string, 0, len(upcoming))
	for _, p := range upcoming {
		lines = append(lines,
			dateStyle.Render(fmt.Sprintf("%-12s", p.DueDate))+
				textStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(p.Description, descW)))+
				dimStyle.Render("  ")+
				amountStyle.Render(fmt.Sprintf("%*s", amountW, a.money(p.Amount))))
	}
	return strings.Join(lines, "\n")
}
