package components

import (
	"strings"

	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty flash replaces
// the right-hand info text; warn colors it as a problem.
func RenderStatusBar(width int, hints, info, flash string, warn bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	right := info
	rightStyle := style
	if flash != "" {
		right = flash
		rightStyle = style.Foreground(t.GreenBright)
		if warn {
			rightStyle = style.Foreground(t.Orange)
		}
	}

	left := style.Render(" " + hints)
	r := rightStyle.Render(right + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(r)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(strings.Repeat(" ", padding)) + r
}
