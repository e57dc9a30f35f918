// Package tui provides the interactive Bubble Tea dashboard for kasa.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/entry"
	"github.com/kasa-ledger/kasa/internal/ledger"
	"github.com/kasa-ledger/kasa/internal/model"
	"github.com/kasa-ledger/kasa/internal/store"
	"github.com/kasa-ledger/kasa/internal/tui/components"
	"github.com/kasa-ledger/kasa/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const (
	tabOverview = iota
	tabTransactions
	tabPlanned
	tabCategories
	tabSettings
)

type formKind int

const (
	formNone formKind = iota
	formTransaction
	formPlanned
	formWindow
	formSetup
)

// listState tracks cursor and pending delete for a list tab.
type listState struct {
	cursor        int
	confirmDelete bool
}

// txListState adds the kind filter and ordering of the transactions tab.
type txListState struct {
	listState
	kind   model.Kind // empty shows all
	sortBy ledger.SortField
	asc    bool
}

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	cfg   config.Config
	log   logrus.FieldLogger

	// Data
	txs         []model.Transaction
	planned     []model.PlannedExpense
	savedWindow model.BudgetWindow
	loaded      bool
	loadErr     error
	loadTime    time.Duration

	// Pre-computed for the current data
	window        model.BudgetWindow
	summary       model.Summary
	summaryErr    error
	categories    []model.CategoryTotal
	visibleTxs    []model.Transaction
	sortedPlanned []model.PlannedExpense

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	txState   txListState
	planState listState
	settings  settingsState

	// Active huh form, if any
	form      *huh.Form
	formKind  formKind
	txVals    *TransactionValues
	planVals  *PlannedValues
	winVals   *WindowValues
	setupVals *SetupValues
	needSetup bool

	// One-line feedback shown in the status bar
	flash     string
	flashWarn bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5
	storeTimeout     = 5 * time.Second
)

// NewApp creates a new TUI app model backed by s.
func NewApp(s *store.Store, cfg config.Config, log logrus.FieldLogger) App {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		store:     s,
		cfg:       cfg,
		log:       log,
		needSetup: !config.Exists(),
		txState:   txListState{sortBy: ledger.SortByDate},
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadLedgerCmd(a.store),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	a.window = a.savedWindow
	if !a.window.IsSet() {
		a.window = entry.DefaultWindow(time.Now(), a.cfg.General.WindowDays)
	}

	a.summary, a.summaryErr = ledger.Summarize(a.txs, a.planned, a.window)
	if a.summaryErr != nil {
		a.log.WithError(a.summaryErr).Warn("budget window unusable, showing zero daily budget")
	}

	a.categories = ledger.RankCategories(ledger.CategoryTotals(a.txs))
	a.visibleTxs = ledger.SortTransactions(
		ledger.FilterByKind(a.txs, a.txState.kind), a.txState.sortBy, a.txState.asc)
	a.sortedPlanned = ledger.SortPlanned(a.planned)

	a.txState.cursor = clampCursor(a.txState.cursor, len(a.visibleTxs))
	a.planState.cursor = clampCursor(a.planState.cursor, len(a.sortedPlanned))
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (a *App) setFlash(msg string, warn bool) {
	a.flash = msg
	a.flashWarn = warn
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKey(msg)

	case ledgerLoadedMsg:
		a.loaded = true
		a.loadTime = msg.took
		if msg.err != nil {
			a.loadErr = msg.err
			a.setFlash("Load failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.loadErr = nil
		a.txs = msg.snap.Transactions
		a.planned = msg.snap.PlannedExpenses
		a.savedWindow = msg.snap.BudgetWindow
		a.recompute()

		if a.needSetup && a.form == nil {
			a.needSetup = false
			return a, a.openSetupForm()
		}
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).Error("saving ledger change")
			a.setFlash(msg.flash+" failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.setFlash(msg.flash, false)
		return a, loadLedgerCmd(a.store)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// moveCursor moves the cursor of the active list tab by delta.
func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabTransactions:
		a.txState.cursor = clampCursor(a.txState.cursor+delta, len(a.visibleTxs))
		a.txState.confirmDelete = false
	case tabPlanned:
		a.planState.cursor = clampCursor(a.planState.cursor+delta, len(a.sortedPlanned))
		a.planState.confirmDelete = false
	case tabSettings:
		a.settings.cursor = clampCursor(a.settings.cursor+delta, settingsFieldCount)
	}
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Settings tab has its own keybindings (text input)
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	// Pending delete consumes the next key
	if a.activeTab == tabTransactions && a.txState.confirmDelete {
		a.txState.confirmDelete = false
		if key == "y" {
			return a, a.deleteSelectedTransaction()
		}
		a.setFlash("Delete cancelled", false)
		return a, nil
	}
	if a.activeTab == tabPlanned && a.planState.confirmDelete {
		a.planState.confirmDelete = false
		if key == "y" {
			return a, a.deleteSelectedPlanned()
		}
		a.setFlash("Delete cancelled", false)
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = ""

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		a.moveCursor(-1)
		return a, nil
	case "g":
		a.moveCursor(-len(a.txs) - len(a.planned) - settingsFieldCount)
		return a, nil
	case "G":
		a.moveCursor(len(a.txs) + len(a.planned) + settingsFieldCount)
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "a":
		if a.activeTab == tabPlanned {
			return a, a.openPlannedForm()
		}
		return a, a.openTransactionForm()
	case "b":
		return a, a.openWindowForm()
	}

	switch a.activeTab {
	case tabTransactions:
		switch key {
		case "f":
			a.txState.kind = nextKindFilter(a.txState.kind)
			a.txState.cursor = 0
			a.recompute()
			return a, nil
		case "s":
			if a.txState.sortBy == ledger.SortByDate {
				a.txState.sortBy = ledger.SortByAmount
			} else {
				a.txState.sortBy = ledger.SortByDate
			}
			a.recompute()
			return a, nil
		case "r":
			a.txState.asc = !a.txState.asc
			a.recompute()
			return a, nil
		case "d", "delete":
			if len(a.visibleTxs) > 0 {
				a.txState.confirmDelete = true
			}
			return a, nil
		}
	case tabPlanned:
		if key == "d" || key == "delete" {
			if len(a.sortedPlanned) > 0 {
				a.planState.confirmDelete = true
			}
			return a, nil
		}
	case tabSettings:
		if key == "enter" {
			return a.settingsStartEdit()
		}
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

// nextKindFilter cycles all -> expense -> income -> all.
func nextKindFilter(k model.Kind) model.Kind {
	switch k {
	case "":
		return model.Expense
	case model.Expense:
		return model.Income
	default:
		return ""
	}
}

func (a *App) deleteSelectedTransaction() tea.Cmd {
	if len(a.visibleTxs) == 0 {
		return nil
	}
	tx := a.visibleTxs[a.txState.cursor]
	s := a.store
	return mutateCmd("Transaction deleted", func(ctx context.Context) error {
		return s.DeleteTransaction(ctx, tx.ID)
	})
}

func (a *App) deleteSelectedPlanned() tea.Cmd {
	if len(a.sortedPlanned) == 0 {
		return nil
	}
	p := a.sortedPlanned[a.planState.cursor]
	s := a.store
	return mutateCmd("Planned expense deleted", func(ctx context.Context) error {
		return s.DeletePlannedExpense(ctx, p.ID)
	})
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.form.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kasa needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ kasa"))
	b.WriteString(subtitleStyle.Render(" · personal ledger"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Opening ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	type binding struct{ key, desc string }
	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o t p c x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Navigate lists"},
			{"g G", "First / Last row"},
		}},
		{"Ledger", []binding{
			{"a", "Add transaction (planned expense on Planned)"},
			{"b", "Set budget window"},
			{"d", "Delete selected row"},
			{"f", "Filter by type"},
			{"s", "Sort by date / amount"},
			{"r", "Reverse order"},
		}},
		{"General", []binding{
			{"Enter", "Edit setting"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + window pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" window ") +
		pillAccent.Render(a.window.StartDate+" → "+a.window.EndDate)
	if !a.savedWindow.IsSet() {
		pill += pillStyle.Render(" (default)")
	}
	if a.activeTab == tabTransactions {
		pill += pillStyle.Render(" │ ") + pillAccent.Render(kindLabel(a.txState.kind)) +
			pillStyle.Render(" │ ") + pillAccent.Render(sortLabel(a.txState.sortBy, a.txState.asc))
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	info := fmt.Sprintf("%d transactions · %d planned", len(a.txs), len(a.planned))
	statusBar := components.RenderStatusBar(w, a.statusHints(), info, a.flash, a.flashWarn)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabPlanned:
		content = a.renderPlannedTab(cw, contentH)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.txState.confirmDelete && a.activeTab == tabTransactions,
		a.planState.confirmDelete && a.activeTab == tabPlanned:
		return "Delete selected row? [y] yes  [any] no"
	case a.activeTab == tabTransactions:
		return "[a]dd [d]elete [f]ilter [s]ort [r]everse  [?]help [q]uit"
	case a.activeTab == tabPlanned:
		return "[a]dd [d]elete  [?]help [q]uit"
	case a.activeTab == tabSettings:
		return "[j/k] navigate [Enter] edit  [?]help [q]uit"
	default:
		return "[a]dd [b]udget window  [?]help [q]uit"
	}
}

func kindLabel(k model.Kind) string {
	switch k {
	case model.Income:
		return "income"
	case model.Expense:
		return "expenses"
	default:
		return "all"
	}
}

func sortLabel(by ledger.SortField, asc bool) string {
	dir := "↓"
	if asc {
		dir = "↑"
	}
	return string(by) + " " + dir
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
