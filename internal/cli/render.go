package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki Dark, matching the dashboard's default theme.
var (
	colorBorder = lipgloss.Color("#282726")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorIncome = lipgloss.Color("#879A39")
	colorWarn   = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	incomeStyle = lipgloss.NewStyle().Foreground(colorIncome)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// separatorRow in Table.Rows draws a horizontal rule.
const separatorRow = "---"

// Table is a bordered text table. The first column is a left-aligned label;
// the rest hold amounts and are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders. Cell widths are measured
// in terminal cells, so labels with arrows or non-Latin letters line up.
func RenderTable(t Table) string {
	widths := columnWidths(t)
	if len(widths) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(row(widths, t.Headers, headerStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == separatorRow {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(row(widths, r, valueStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table) []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			if i < n {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == separatorRow {
			continue
		}
		measure(r)
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func row(widths []int, cells []string, style lipgloss.Style) string {
	bar := dimStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
		if i == 0 {
			cell += pad
		} else {
			cell = pad + cell
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(bar)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a simple text progress bar for part of whole.
func RenderProgressBar(part, whole float64, width int) string {
	if whole <= 0 || width <= 0 {
		return ""
	}

	pct := part / whole
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", mutedStyle.Render(bar), FormatPercent(pct*100))
}

// RenderHorizontalBar renders a labeled horizontal bar chart entry.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %s %s", label, incomeStyle.Render(bar))
}

// RenderWarning renders a single warning line.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render("! "+msg)
}
