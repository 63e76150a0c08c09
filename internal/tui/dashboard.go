package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/goal"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/logging"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/tracker"
	"github.com/sadopc/daytally/internal/validate"
)

type formKind int

const (
	formNone formKind = iota
	formAddInterval
	formEditInterval
	formGoal
	formReset
)

type dashboardModel struct {
	tracker *tracker.Store
	goals   *goal.Store
	clock   clock.Clock
	lang    i18n.Lang
	width   int
	height  int

	cursor int
	bar    progress.Model

	formActive bool
	form       *huh.Form
	formKind   formKind
	editing    tracker.Interval
	// editRunning is set when the form edits the running interval.
	editRunning bool

	// Form values as pointers (survive value copies)
	startVal   *string
	endVal     *string
	hoursVal   *string
	minutesVal *string
	confirmVal *bool
}

func newDashboardModel(tr *tracker.Store, g *goal.Store, clk clock.Clock, lang i18n.Lang) dashboardModel {
	start, end, hours, minutes := "", "", "", ""
	confirm := false
	return dashboardModel{
		tracker:    tr,
		goals:      g,
		clock:      clk,
		lang:       lang,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		startVal:   &start,
		endVal:     &end,
		hoursVal:   &hours,
		minutesVal: &minutes,
		confirmVal: &confirm,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, w-12)
}

func (d *dashboardModel) clampCursor() {
	n := len(d.tracker.Today())
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d dashboardModel) selected() (tracker.Interval, bool) {
	list := d.tracker.Today()
	if d.cursor < 0 || d.cursor >= len(list) {
		return tracker.Interval{}, false
	}
	return list[d.cursor], true
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Toggle):
		if d.tracker.Tracking() {
			return d, d.run(d.tracker.Stop)
		}
		return d, d.run(d.tracker.Start)
	case key.Matches(keyMsg, keys.Start):
		return d, d.run(d.tracker.Start)
	case key.Matches(keyMsg, keys.Stop):
		return d, d.run(d.tracker.Stop)
	case key.Matches(keyMsg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if d.cursor < len(d.tracker.Today())-1 {
			d.cursor++
		}
	case key.Matches(keyMsg, keys.Add):
		return d.showAddForm()
	case key.Matches(keyMsg, keys.Edit):
		if iv, ok := d.selected(); ok {
			return d.showEditForm(iv)
		}
	case key.Matches(keyMsg, keys.Delete):
		if iv, ok := d.selected(); ok {
			return d, d.run(func() error { return d.tracker.Delete(iv.ID) })
		}
	case key.Matches(keyMsg, keys.Goal):
		return d.showGoalForm()
	case key.Matches(keyMsg, keys.NoGoal):
		return d, d.run(d.goals.Clear)
	case key.Matches(keyMsg, keys.Reset):
		if len(d.tracker.Today()) > 0 {
			return d.showResetForm()
		}
	}
	return d, nil
}

// run performs a store action and reports a failure in the status bar.
// Successful interval changes arrive back as storeChangedMsg.
func (d dashboardModel) run(action func() error) tea.Cmd {
	if err := action(); err != nil {
		return statusCmd(fmt.Sprintf("Error: %s", i18n.Error(d.lang, err)), true)
	}
	return nil
}

// --- Forms ---

func (d dashboardModel) showAddForm() (dashboardModel, tea.Cmd) {
	*d.startVal = timefmt.WallClock(d.clock.Now())
	*d.endVal = ""
	d.formKind = formAddInterval
	d.editRunning = false
	return d.openIntervalForm(i18n.T(d.lang, i18n.AddInterval), true)
}

func (d dashboardModel) showEditForm(iv tracker.Interval) (dashboardModel, tea.Cmd) {
	*d.startVal = timefmt.WallClock(iv.StartTime())
	*d.endVal = ""
	if end, ok := iv.EndTime(); ok {
		*d.endVal = timefmt.WallClock(end)
	}
	cur, running := d.tracker.Current()
	d.editing = iv
	d.editRunning = running && cur.ID == iv.ID
	d.formKind = formEditInterval
	return d.openIntervalForm(i18n.T(d.lang, i18n.Edit), !d.editRunning)
}

func (d dashboardModel) openIntervalForm(title string, withEnd bool) (dashboardModel, tea.Cmd) {
	fields := []huh.Field{
		huh.NewInput().
			Title(i18n.T(d.lang, i18n.StartTime)).
			Placeholder("HH:MM").
			Value(d.startVal).
			Validate(d.localized(func(string) error {
				_, _, err := d.intervalInput()
				return err
			})),
	}
	if withEnd {
		fields = append(fields, huh.NewInput().
			Title(i18n.T(d.lang, i18n.EndTime)).
			Placeholder("HH:MM").
			Value(d.endVal).
			Validate(d.localized(func(string) error {
				_, _, err := d.intervalInput()
				return err
			})))
	}

	d.form = huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showGoalForm() (dashboardModel, tea.Cmd) {
	*d.hoursVal, *d.minutesVal = "", ""
	title := i18n.T(d.lang, i18n.SetGoal)
	if g := d.goals.Current(); g != nil {
		*d.hoursVal = fmt.Sprint(g.Hours)
		*d.minutesVal = fmt.Sprint(g.Minutes)
		title = i18n.T(d.lang, i18n.EditGoal)
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(i18n.T(d.lang, i18n.Hours)).Placeholder("0").Value(d.hoursVal),
			huh.NewInput().Title(i18n.T(d.lang, i18n.Minutes)).Placeholder("0").Value(d.minutesVal).
				Validate(d.localized(func(string) error {
					_, _, err := d.goalInput()
					return err
				})),
		).Title(title),
	).WithShowHelp(true).WithShowErrors(true)
	d.formKind = formGoal
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showResetForm() (dashboardModel, tea.Cmd) {
	*d.confirmVal = false
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(i18n.T(d.lang, i18n.ConfirmClear)).
				Affirmative(i18n.T(d.lang, i18n.ClearAll)).
				Negative(i18n.T(d.lang, i18n.Cancel)).
				Value(d.confirmVal),
		),
	).WithShowHelp(true)
	d.formKind = formReset
	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) localized(fn func(string) error) func(string) error {
	return func(s string) error {
		if err := fn(s); err != nil {
			return errors.New(i18n.Error(d.lang, err))
		}
		return nil
	}
}

// intervalInput parses and validates the interval form. Times are read on
// the day of the edited interval, or today when adding.
func (d dashboardModel) intervalInput() (time.Time, *time.Time, error) {
	now := d.clock.Now()
	day := now
	if d.formKind == formEditInterval {
		day = d.editing.StartTime()
	}
	start, err := validate.ParseClock(*d.startVal, day)
	if err != nil {
		return time.Time{}, nil, err
	}
	var end *time.Time
	if !d.editRunning {
		if end, err = validate.ParseOptionalClock(*d.endVal, day); err != nil {
			return time.Time{}, nil, err
		}
		// A finished interval keeps an end time.
		if end == nil && d.formKind == formEditInterval {
			return time.Time{}, nil, validate.ErrBadClock
		}
	}
	checkFuture := d.formKind == formAddInterval || d.editRunning
	if err := validate.Interval(start, end, now, checkFuture); err != nil {
		return time.Time{}, nil, err
	}
	return start, end, nil
}

func (d dashboardModel) goalInput() (int, int, error) {
	h, m, err := validate.ParseGoal(*d.hoursVal, *d.minutesVal)
	if err != nil {
		return 0, 0, err
	}
	return h, m, validate.Goal(h, m)
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.closeForm()
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateCompleted:
		kind := d.formKind
		d.closeForm()
		return d, d.submit(kind)
	case huh.StateAborted:
		d.closeForm()
		return d, nil
	}
	return d, cmd
}

func (d *dashboardModel) closeForm() {
	d.formActive = false
	d.form = nil
}

// submit applies the values of a completed form.
func (d dashboardModel) submit(kind formKind) tea.Cmd {
	switch kind {
	case formAddInterval, formEditInterval:
		start, end, err := d.intervalInput()
		if err != nil {
			return statusCmd(i18n.Error(d.lang, err), true)
		}
		if kind == formAddInterval {
			return d.run(func() error {
				iv, err := d.tracker.Add(start, end)
				if err == nil {
					logging.Debugf("added interval %s", iv.ID)
				}
				return err
			})
		}
		return d.run(func() error { return d.tracker.Edit(d.editing.ID, start, end) })

	case formGoal:
		h, m, err := d.goalInput()
		if err != nil {
			return statusCmd(i18n.Error(d.lang, err), true)
		}
		if d.goals.Current() != nil {
			return d.run(func() error { return d.goals.Edit(h, m) })
		}
		return d.run(func() error { return d.goals.Set(h, m) })

	case formReset:
		if *d.confirmVal {
			return d.run(d.tracker.Reset)
		}
	}
	return nil
}

// --- View ---

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		return activePanelStyle.Width(contentWidth).Render(d.form.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTimerPanel(contentWidth),
		d.renderGoalPanel(contentWidth),
		d.renderIntervals(contentWidth),
	)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	total := d.tracker.Total()
	timeStr := timefmt.Clock(total)

	if cur, ok := d.tracker.Current(); ok {
		style := timerRunningStyle
		if p, ok := d.goals.Progress(total); ok && p.Reached {
			style = timerOvertimeStyle
		}
		content := lipgloss.JoinVertical(lipgloss.Center,
			style.Width(w-6).Render(timeStr),
			successStyle.Render("●  "+i18n.T(d.lang, i18n.Running)),
			mutedStyle.Render(i18n.T(d.lang, i18n.StartTime)+" "+timefmt.WallClock(cur.StartTime())),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Width(w-6).Render(timeStr),
		mutedStyle.Render("■  "+i18n.T(d.lang, i18n.Stopped)),
		mutedStyle.Render(i18n.T(d.lang, i18n.StartHint)),
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderGoalPanel(w int) string {
	g := d.goals.Current()
	if g == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("g: " + i18n.T(d.lang, i18n.SetGoal)),
		)
	}

	p, _ := d.goals.Progress(d.tracker.Total())
	title := titleStyle.Render(i18n.T(d.lang, i18n.DailyGoal)) + "  " +
		highlightStyle.Render(timefmt.Minutes(g.TotalMinutes))

	var status string
	if p.Reached {
		status = successStyle.Render(i18n.T(d.lang, i18n.GoalReached))
		if p.Overtime > 0 {
			status += mutedStyle.Render(fmt.Sprintf("  %s: %s", i18n.T(d.lang, i18n.Overtime), timefmt.Compact(p.Overtime)))
		}
	} else {
		status = fmt.Sprintf("%s: %s", i18n.T(d.lang, i18n.Remaining), timefmt.Compact(p.Remaining))
		if d.tracker.Tracking() {
			status += mutedStyle.Render(fmt.Sprintf("  %s %s",
				i18n.T(d.lang, i18n.EstimatedCompletion), timefmt.WallClock(p.ETA)))
		}
	}

	bar := d.bar.ViewAs(p.Percent/100) + fmt.Sprintf(" %3.0f%%", p.Percent)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, bar, status))
}

func (d dashboardModel) renderIntervals(w int) string {
	title := titleStyle.Render(i18n.T(d.lang, i18n.TodayIntervals))
	list := d.tracker.Today()
	if len(list) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render(i18n.T(d.lang, i18n.NoIntervals)),
		))
	}

	cur, running := d.tracker.Current()
	var rows []string
	rows = append(rows, title)
	for i, iv := range list {
		end := "--:--"
		dur := timefmt.Clock(iv.Duration())
		status := "✓"
		if e, ok := iv.EndTime(); ok {
			end = timefmt.WallClock(e)
		} else if running && iv.ID == cur.ID {
			status = "●"
			dur = timefmt.Clock(d.tracker.LastTick().Sub(iv.StartTime()))
			end = i18n.T(d.lang, i18n.InProgress)
		}

		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s - %-12s %s",
			cursor, status, timefmt.WallClock(iv.StartTime()), end, dur)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s: %s", i18n.T(d.lang, i18n.TotalTime), timefmt.Clock(d.tracker.Total()))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
