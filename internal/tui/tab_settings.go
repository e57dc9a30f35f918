package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/tui/components"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldWindowDays
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		names := make([]string, 0, len(theme.All))
		for _, th := range theme.All {
			names = append(names, th.Name)
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "BGN"
		ti.CharLimit = 3
		ti.SetValue(a.cfg.General.Currency)
	case settingsFieldWindowDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(a.cfg.General.WindowDays))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadFileConfig()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Exists(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldCurrency:
		cfg.General.Currency = strings.ToUpper(val)
	case settingsFieldWindowDays:
		d, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("window days must be a number")
			return
		}
		cfg.General.WindowDays = d
	}

	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return
	}
	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		return
	}

	a.cfg.Appearance.Theme = cfg.Appearance.Theme
	a.cfg.General.Currency = cfg.General.Currency
	a.cfg.General.WindowDays = cfg.General.WindowDays
	theme.SetActive(cfg.Appearance.Theme)
	a.recompute()
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Theme", a.cfg.Appearance.Theme},
		{"Currency", a.cfg.General.Currency},
		{"Window Days", strconv.Itoa(a.cfg.General.WindowDays)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-14s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-14s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(valueStyle.Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-14s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	dbPath := ""
	if a.store != nil {
		dbPath = a.store.Path()
	}
	windowState := "saved"
	if !a.savedWindow.IsSet() {
		windowState = fmt.Sprintf("default (today + %dd)", a.cfg.General.WindowDays)
	}

	var info strings.Builder
	info.WriteString(labelStyle.Render("Database:     ") + valueStyle.Render(dbPath) + "\n")
	info.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.Path()) + "\n")
	info.WriteString(labelStyle.Render("Window:       ") + valueStyle.Render(windowState) + "\n")
	info.WriteString(labelStyle.Render("Categories:   ") + valueStyle.Render(fmt.Sprintf("%d expense, %d income",
		len(a.cfg.Categories.Expense), len(a.cfg.Categories.Income))) + "\n")
	info.WriteString(labelStyle.Render("Load time:    ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
