package tui

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/export"
	"github.com/sadopc/daytally/internal/goal"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/logging"
	"github.com/sadopc/daytally/internal/store"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/tracker"
)

// Prefs is the key-value surface the UI reads and writes directly.
type Prefs interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	All() ([]store.Entry, error)
}

type Options struct {
	Tracker   *tracker.Store
	Goals     *goal.Store
	Prefs     Prefs
	Clock     clock.Clock
	Lang      i18n.Lang
	ExportDir string
}

const (
	exportTodayCSV = iota
	exportAllCSV
	exportAllJSON
	exportChoices
)

// App is the root Bubble Tea model.
type App struct {
	tracker   *tracker.Store
	goals     *goal.Store
	prefs     Prefs
	clock     clock.Clock
	lang      i18n.Lang
	exportDir string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	consented     bool
	exportPicking bool
	exportCursor  int
	ticker        ticker

	dashboard dashboardModel
	history   historyModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(o Options) App {
	h := help.New()
	h.ShowAll = false

	if o.Clock == nil {
		o.Clock = clock.System{}
	}
	flag, _, err := o.Prefs.Get(store.KeyStorageConsent)
	if err != nil {
		log.Printf("tui: read storage notice flag: %v", err)
	}

	a := App{
		tracker:    o.Tracker,
		goals:      o.Goals,
		prefs:      o.Prefs,
		clock:      o.Clock,
		lang:       o.Lang,
		exportDir:  o.ExportDir,
		activeView: viewDashboard,
		consented:  flag == "true",
		ticker:     newTicker(),
		dashboard:  newDashboardModel(o.Tracker, o.Goals, o.Clock, o.Lang),
		history:    newHistoryModel(o.Tracker, o.Clock, o.Lang),
		settings:   newSettingsModel(o.Prefs, o.Lang),
		help:       h,
	}
	if o.Tracker.Tracking() {
		o.Tracker.Refresh()
		a.ticker.start()
	}
	return a
}

// Run starts the program and forwards interval store changes into it until
// the user quits.
func Run(o Options, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewApp(o), opts...)
	unsubscribe := o.Tracker.Subscribe(func() {
		go p.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.history.refresh()}
	if a.ticker.running {
		cmds = append(cmds, a.ticker.next())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case !a.consented && key.Matches(msg, keys.Accept):
			return a.acceptStorageNotice()
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewCount
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		if !a.ticker.accepts(msg) {
			return a, nil
		}
		a.tracker.Tick(msg.time)
		a.checkGoal()
		return a, a.ticker.next()

	case storeChangedMsg:
		cmd := a.ticker.sync(a.tracker.Tracking())
		a.dashboard.clampCursor()
		a.checkGoal()
		return a, tea.Batch(cmd, a.history.refresh())

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		if msg.isError {
			log.Printf("tui: %s", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = i18n.T(a.lang, i18n.ExportedTo) + " " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil

	case openExportMsg:
		a.exportPicking = true
		a.exportCursor = 0
		return a, nil

	case languageChangedMsg:
		a.setLang(msg.lang)
		return a, tea.Batch(a.history.refresh(), a.settings.refresh())

	// Data loads land in their view even when another one is active.
	case historyDataMsg:
		var cmd tea.Cmd
		a.history, cmd = a.history.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewHistory:
		return a.history.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a *App) setLang(l i18n.Lang) {
	a.lang = l
	a.dashboard.lang = l
	a.history.lang = l
	a.settings.lang = l
}

// checkGoal marks an active goal complete once today's total reaches it.
func (a *App) checkGoal() {
	g := a.goals.Current()
	if g == nil || !g.IsActive {
		return
	}
	p, ok := a.goals.Progress(a.tracker.Total())
	if !ok || !p.Reached {
		return
	}
	if err := a.goals.Complete(); err != nil {
		log.Printf("tui: complete goal: %v", err)
		return
	}
	logging.Debugf("goal of %s reached", timefmt.Minutes(g.TotalMinutes))
	a.status = i18n.T(a.lang, i18n.GoalReached)
	a.statusErr = false
}

func (a App) acceptStorageNotice() (tea.Model, tea.Cmd) {
	if err := a.prefs.Set(store.KeyStorageConsent, "true"); err != nil {
		return a, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	a.consented = true
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewHistory:
		content = a.history.view()
	case viewSettings:
		content = a.settings.view()
	}

	if !a.consented {
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderStorageNotice(), content)
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames(a.lang) {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render(i18n.T(a.lang, i18n.AppTitle))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	timerInfo := ""
	if a.tracker.Tracking() {
		timerInfo = successStyle.Render(" ● " + timefmt.Clock(a.tracker.Total()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderStorageNotice() string {
	w := a.width - 4
	msg := i18n.T(a.lang, i18n.ConsentMessage)
	hint := mutedStyle.Render("y: " + i18n.T(a.lang, i18n.ConsentAccept))
	return bannerStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, msg, hint))
}

func (a App) exportLabels() []string {
	return []string{
		i18n.T(a.lang, i18n.ExportTodayCSV),
		i18n.T(a.lang, i18n.ExportAllCSV),
		i18n.T(a.lang, i18n.ExportAllJSON),
	}
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render(i18n.T(a.lang, i18n.ExportHistory))
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range a.exportLabels() {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: "+i18n.T(a.lang, i18n.Cancel)))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < exportChoices-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(choice int) tea.Cmd {
	tr, lang, dir, now := a.tracker, a.lang, a.exportDir, a.clock.Now()
	return func() tea.Msg {
		var (
			path  string
			write func(io.Writer) error
		)
		switch choice {
		case exportTodayCSV, exportAllCSV:
			all := choice == exportAllCSV
			days := []string{tr.SessionDay()}
			if all {
				days = tr.DayKeys()
			}
			reports := export.BuildReport(tr, days, now)
			path = filepath.Join(dir, export.Filename("csv", all, now))
			write = func(w io.Writer) error { return export.ToCSV(w, reports, export.LabelsFor(lang)) }
		default:
			snapshot := tr.Snapshot()
			path = filepath.Join(dir, export.Filename("json", true, now))
			write = func(w io.Writer) error { return export.ToJSON(w, snapshot) }
		}

		if err := export.WriteFile(path, write); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		logging.Debugf("exported %s", path)
		return exportDoneMsg{path: path}
	}
}
