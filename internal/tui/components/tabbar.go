package components

import (
	"strings"

	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Transactions", Key: 't', KeyPos: 0},
	{Name: "Planned", Key: 'p', KeyPos: 0},
	{Name: "Categories", Key: 'c', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

func tabStyles(active bool) (name, key, bracket lipgloss.Style) {
	t := theme.Active
	base := lipgloss.NewStyle().Padding(0, 1).Background(t.Surface)
	if active {
		name = base.Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	} else {
		name = base.Foreground(t.TextMuted)
	}
	key = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	bracket = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return name, key, bracket
}

func renderTab(tab Tab, active bool) string {
	nameStyle, keyStyle, bracketStyle := tabStyles(active)
	rendered := nameStyle.Render(tab.Name)
	if !active && tab.KeyPos < 0 {
		rendered += bracketStyle.Render("[") + keyStyle.Render(string(tab.Key)) + bracketStyle.Render("]")
	}
	return rendered
}

// TabVisualWidth returns the rendered width of a tab.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		parts = append(parts, renderTab(tab, i == activeIdx))
	}

	return lipgloss.NewStyle().
		Background(t.Surface).
		Width(width).
		Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
