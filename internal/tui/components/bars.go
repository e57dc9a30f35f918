package components

import (
	"fmt"
	"strings"

	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarRow is one entry of a horizontal bar list.
type BarRow struct {
	Label string
	Value float64
	Note  string // right-hand text, e.g. a formatted amount
}

// HBarList renders labeled horizontal bars scaled to the largest value.
func HBarList(rows []BarRow, color lipgloss.Color, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW, noteW := 0, 0
	peak := 0.0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		noteW = max(noteW, lipgloss.Width(r.Note))
		peak = max(peak, r.Value)
	}
	barW := width - labelW - noteW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		n := 0
		if peak > 0 {
			n = int(r.Value / peak * float64(barW))
		}
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label))+
				space.Render("  ")+
				barStyle.Render(strings.Repeat("█", n))+
				space.Render(strings.Repeat(" ", barW-n+2))+
				noteStyle.Render(fmt.Sprintf("%*s", noteW, r.Note)))
	}
	return strings.Join(lines, "\n")
}
