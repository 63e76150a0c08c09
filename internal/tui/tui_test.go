package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/goal"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/store"
	"github.com/sadopc/daytally/internal/tracker"
	"github.com/sadopc/daytally/internal/validate"
)

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

type testEnv struct {
	kv    *store.Store
	clock *clock.Manual
	tr    *tracker.Store
	goals *goal.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	kv, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	clk := clock.NewManual(testNow)
	tr, err := tracker.New(kv, clk)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	goals, err := goal.New(kv, clk)
	if err != nil {
		t.Fatalf("new goal store: %v", err)
	}
	return testEnv{kv: kv, clock: clk, tr: tr, goals: goals}
}

func (e testEnv) app(t *testing.T) App {
	t.Helper()
	return NewApp(Options{
		Tracker:   e.tr,
		Goals:     e.goals,
		Prefs:     e.kv,
		Clock:     e.clock,
		Lang:      i18n.EnUS,
		ExportDir: t.TempDir(),
	})
}

func press(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app, cmd
}

// ============================================================
// Ticker
// ============================================================

func TestTickerStartStop(t *testing.T) {
	tk := newTicker()
	if tk.running {
		t.Fatal("ticker should start stopped")
	}
	if cmd := tk.start(); cmd == nil {
		t.Fatal("start should schedule a tick")
	}
	if cmd := tk.start(); cmd != nil {
		t.Fatal("second start should not schedule another tick")
	}

	first := tickMsg{id: tk.id}
	if !tk.accepts(first) {
		t.Fatal("current tick should be accepted")
	}

	tk.stop()
	if tk.accepts(first) {
		t.Fatal("tick after stop should be dropped")
	}

	tk.start()
	if tk.accepts(first) {
		t.Fatal("tick from an earlier run should be dropped")
	}
	if !tk.accepts(tickMsg{id: tk.id}) {
		t.Fatal("tick from the current run should be accepted")
	}
}

func TestTickerSync(t *testing.T) {
	tk := newTicker()
	if cmd := tk.sync(true); cmd == nil || !tk.running {
		t.Fatal("sync(true) should start the ticker")
	}
	if cmd := tk.sync(false); cmd != nil || tk.running {
		t.Fatal("sync(false) should stop the ticker")
	}
}

// ============================================================
// App
// ============================================================

func TestNewAppResumesTicker(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	a := env.app(t)
	if !a.ticker.running {
		t.Fatal("ticker should run when the store is already tracking")
	}
}

func TestAppToggleTracking(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)

	a, _ = update(t, a, press(" "))
	if !env.tr.Tracking() {
		t.Fatal("space should start tracking")
	}
	a, cmd := update(t, a, storeChangedMsg{})
	if cmd == nil || !a.ticker.running {
		t.Fatal("store change should start the ticker")
	}

	stale := tickMsg{id: a.ticker.id}
	a, _ = update(t, a, press(" "))
	if env.tr.Tracking() {
		t.Fatal("space should stop tracking")
	}
	a, _ = update(t, a, storeChangedMsg{})
	if a.ticker.running {
		t.Fatal("ticker should stop with tracking")
	}
	if _, cmd := update(t, a, stale); cmd != nil {
		t.Fatal("stale tick should not be rescheduled")
	}
}

func TestAppTickUpdatesTotal(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)
	a, _ = update(t, a, press("s"))
	a, _ = update(t, a, storeChangedMsg{})

	now := env.clock.Advance(5 * time.Second)
	a, cmd := update(t, a, tickMsg{id: a.ticker.id, time: now})
	if cmd == nil {
		t.Fatal("accepted tick should schedule the next one")
	}
	if got := env.tr.Total(); got != 5*time.Second {
		t.Fatalf("total = %v, want 5s", got)
	}

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(a.View(), "00:00:05") {
		t.Fatal("view should show the running total")
	}
}

func TestAppCompletesGoal(t *testing.T) {
	env := newTestEnv(t)
	if err := env.goals.Set(0, 1); err != nil {
		t.Fatal(err)
	}
	a := env.app(t)
	a, _ = update(t, a, press("s"))
	a, _ = update(t, a, storeChangedMsg{})

	now := env.clock.Advance(30 * time.Second)
	a, _ = update(t, a, tickMsg{id: a.ticker.id, time: now})
	if g := env.goals.Current(); g == nil || !g.IsActive {
		t.Fatal("goal should still be active after 30s")
	}

	now = env.clock.Advance(31 * time.Second)
	a, _ = update(t, a, tickMsg{id: a.ticker.id, time: now})
	g := env.goals.Current()
	if g == nil || g.IsActive || g.CompletedAt == nil {
		t.Fatalf("goal should be completed, got %+v", g)
	}
	if a.status != i18n.T(i18n.EnUS, i18n.GoalReached) {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppAcceptStorageNotice(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)
	if a.consented {
		t.Fatal("notice should show on first run")
	}

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(a.View(), "stores its data locally") {
		t.Fatal("view should show the storage notice")
	}

	a, _ = update(t, a, press("y"))
	if !a.consented {
		t.Fatal("y should dismiss the notice")
	}
	v, ok, err := env.kv.Get(store.KeyStorageConsent)
	if err != nil || !ok || v != "true" {
		t.Fatalf("consent flag = %q, %v, %v", v, ok, err)
	}
	if !env.app(t).consented {
		t.Fatal("dismissal should persist")
	}
}

func TestAppViewSwitching(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)

	a, _ = update(t, a, press("2"))
	if a.activeView != viewHistory {
		t.Fatal("2 should open history")
	}
	a, _ = update(t, a, press("3"))
	if a.activeView != viewSettings {
		t.Fatal("3 should open settings")
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestAppExportTodayCSV(t *testing.T) {
	env := newTestEnv(t)
	end := testNow.Add(-time.Hour)
	if _, err := env.tr.Add(testNow.Add(-2*time.Hour), &end); err != nil {
		t.Fatal(err)
	}
	a := env.app(t)

	msg := a.doExport(exportTodayCSV)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("export returned %#v", msg)
	}
	if !strings.HasSuffix(done.path, "daytally-today-2024-03-01.csv") {
		t.Fatalf("path = %q", done.path)
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "Date,Start,End,Duration\n") {
		t.Fatalf("unexpected header in %q", out)
	}
	if !strings.Contains(out, "2024-03-01,,Day total,01:00:00") {
		t.Fatalf("missing day total in %q", out)
	}
}

func TestAppExportJSON(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	a := env.app(t)

	done, ok := a.doExport(exportAllJSON)().(exportDoneMsg)
	if !ok {
		t.Fatal("json export failed")
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"2024-03-01"`) {
		t.Fatalf("backup should contain today's bucket: %s", data)
	}
}

func TestAppExportPicker(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)

	a, _ = update(t, a, press("E"))
	if !a.exportPicking {
		t.Fatal("E should open the export picker")
	}
	a, _ = update(t, a, press("j"))
	a, _ = update(t, a, press("j"))
	a, _ = update(t, a, press("j"))
	if a.exportCursor != exportChoices-1 {
		t.Fatalf("cursor = %d", a.exportCursor)
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}

	a, _ = update(t, a, press("2"))
	a, cmd := update(t, a, press("x"))
	if cmd == nil {
		t.Fatal("x on history should request the picker")
	}
	a, _ = update(t, a, cmd())
	if !a.exportPicking {
		t.Fatal("picker should open from history")
	}
}

func TestAppLanguageChange(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)

	*a.settings.language = string(i18n.Es)
	msg := a.settings.saveLanguage()()
	changed, ok := msg.(languageChangedMsg)
	if !ok || changed.lang != i18n.Es {
		t.Fatalf("saveLanguage returned %#v", msg)
	}
	if v, _, _ := env.kv.Get(store.KeyLanguage); v != string(i18n.Es) {
		t.Fatalf("saved language = %q", v)
	}

	a, _ = update(t, a, changed)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if a.dashboard.lang != i18n.Es || !strings.Contains(a.View(), "Panel") {
		t.Fatal("views should switch to Spanish")
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardIntervalInput(t *testing.T) {
	env := newTestEnv(t)
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)

	d.formKind = formAddInterval
	*d.startVal, *d.endVal = "09:00", "08:00"
	if _, _, err := d.intervalInput(); !errors.Is(err, validate.ErrStartAfterEnd) {
		t.Fatalf("want ErrStartAfterEnd, got %v", err)
	}

	*d.startVal, *d.endVal = "11:00", ""
	if _, _, err := d.intervalInput(); !errors.Is(err, validate.ErrStartInFuture) {
		t.Fatalf("want ErrStartInFuture, got %v", err)
	}

	*d.startVal = "9h"
	if _, _, err := d.intervalInput(); !errors.Is(err, validate.ErrBadClock) {
		t.Fatalf("want ErrBadClock, got %v", err)
	}

	*d.startVal, *d.endVal = "08:30", "09:15"
	start, end, err := d.intervalInput()
	if err != nil {
		t.Fatal(err)
	}
	if start.Hour() != 8 || start.Minute() != 30 || end == nil || end.Sub(start) != 45*time.Minute {
		t.Fatalf("parsed %v - %v", start, end)
	}
}

func TestDashboardEditKeepsEndOfFinishedInterval(t *testing.T) {
	env := newTestEnv(t)
	end := testNow.Add(-time.Hour)
	iv, err := env.tr.Add(testNow.Add(-2*time.Hour), &end)
	if err != nil {
		t.Fatal(err)
	}
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)
	d, _ = d.showEditForm(iv)
	if d.editRunning || !d.formActive {
		t.Fatal("edit form should open for a finished interval")
	}

	*d.endVal = ""
	if _, _, err := d.intervalInput(); !errors.Is(err, validate.ErrBadClock) {
		t.Fatalf("blank end should be rejected, got %v", err)
	}

	// Editing a finished interval may move it past now.
	*d.startVal, *d.endVal = "08:00", "11:30"
	if _, _, err := d.intervalInput(); err != nil {
		t.Fatal(err)
	}
	if cmd := d.submit(formEditInterval); cmd != nil {
		t.Fatalf("submit failed: %v", cmd())
	}
	got, _ := env.tr.Get(iv.ID)
	if got.StartTime().Hour() != 8 {
		t.Fatalf("start not updated: %v", got.StartTime())
	}
}

func TestDashboardEditRunningInterval(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	cur, _ := env.tr.Current()

	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)
	d, _ = d.showEditForm(cur)
	if !d.editRunning {
		t.Fatal("running interval should be detected")
	}

	*d.startVal = "10:30"
	if _, _, err := d.intervalInput(); !errors.Is(err, validate.ErrStartInFuture) {
		t.Fatalf("want ErrStartInFuture, got %v", err)
	}

	*d.startVal = "09:00"
	if cmd := d.submit(formEditInterval); cmd != nil {
		t.Fatalf("submit failed: %v", cmd())
	}
	if !env.tr.Tracking() {
		t.Fatal("editing the running interval should keep it open")
	}
	if got := env.tr.Total(); got != time.Hour {
		t.Fatalf("total = %v, want 1h", got)
	}
}

func TestDashboardSubmitAdd(t *testing.T) {
	env := newTestEnv(t)
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)
	d, _ = d.showAddForm()
	if *d.startVal != "10:00" {
		t.Fatalf("start should default to now, got %q", *d.startVal)
	}

	*d.startVal, *d.endVal = "08:00", "09:30"
	if cmd := d.submit(formAddInterval); cmd != nil {
		t.Fatalf("submit failed: %v", cmd())
	}
	if got := env.tr.Total(); got != 90*time.Minute {
		t.Fatalf("total = %v, want 1h30m", got)
	}

	*d.startVal, *d.endVal = "09:30", "09:00"
	msg := d.submit(formAddInterval)()
	if st, ok := msg.(statusMsg); !ok || !st.isError || st.text != i18n.T(i18n.EnUS, i18n.StartBeforeEnd) {
		t.Fatalf("want localized rejection, got %#v", msg)
	}
}

func TestDashboardSubmitOpenAddWhileTracking(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)
	d, _ = d.showAddForm()

	*d.startVal, *d.endVal = "09:00", ""
	msg := d.submit(formAddInterval)()
	st, ok := msg.(statusMsg)
	if !ok || !st.isError || !strings.Contains(st.text, i18n.T(i18n.EnUS, i18n.OpenNotLast)) {
		t.Fatalf("want localized rejection, got %#v", msg)
	}
	if n := len(env.tr.Today()); n != 1 {
		t.Fatalf("expected only the running interval, got %d", n)
	}
}

func TestDashboardSubmitGoal(t *testing.T) {
	env := newTestEnv(t)
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)

	*d.hoursVal, *d.minutesVal = "2", "30"
	if cmd := d.submit(formGoal); cmd != nil {
		t.Fatalf("submit failed: %v", cmd())
	}
	g := env.goals.Current()
	if g == nil || g.TotalMinutes != 150 {
		t.Fatalf("goal = %+v", g)
	}
	created := g.CreatedAt

	d, _ = d.showGoalForm()
	if *d.hoursVal != "2" || *d.minutesVal != "30" {
		t.Fatal("goal form should be prefilled")
	}
	*d.hoursVal, *d.minutesVal = "3", ""
	if cmd := d.submit(formGoal); cmd != nil {
		t.Fatalf("submit failed: %v", cmd())
	}
	g = env.goals.Current()
	if g.TotalMinutes != 180 || !g.CreatedAt.Equal(created) {
		t.Fatalf("goal should be edited in place, got %+v", g)
	}

	*d.hoursVal, *d.minutesVal = "0", "0"
	if _, ok := d.submit(formGoal)().(statusMsg); !ok {
		t.Fatal("empty goal should be rejected")
	}
}

func TestDashboardCursorAndDelete(t *testing.T) {
	env := newTestEnv(t)
	for _, h := range []int{3, 2} {
		end := testNow.Add(-time.Duration(h-1) * time.Hour)
		if _, err := env.tr.Add(testNow.Add(-time.Duration(h)*time.Hour), &end); err != nil {
			t.Fatal(err)
		}
	}
	a := env.app(t)

	a, _ = update(t, a, press("j"))
	a, _ = update(t, a, press("j"))
	if a.dashboard.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.dashboard.cursor)
	}
	a, _ = update(t, a, press("d"))
	a, _ = update(t, a, storeChangedMsg{})
	if n := len(env.tr.Today()); n != 1 {
		t.Fatalf("intervals = %d, want 1", n)
	}
	if a.dashboard.cursor != 0 {
		t.Fatalf("cursor should be clamped, got %d", a.dashboard.cursor)
	}
}

func TestDashboardResetConfirm(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)

	d, _ = d.showResetForm()
	if !d.formActive {
		t.Fatal("reset should ask for confirmation")
	}
	d.submit(formReset)
	if len(env.tr.Today()) != 1 {
		t.Fatal("declined reset should keep intervals")
	}

	*d.confirmVal = true
	d.submit(formReset)
	if len(env.tr.Today()) != 0 || env.tr.Tracking() {
		t.Fatal("confirmed reset should clear today")
	}
}

func TestDashboardViewStopped(t *testing.T) {
	env := newTestEnv(t)
	d := newDashboardModel(env.tr, env.goals, env.clock, i18n.EnUS)
	d.setSize(100, 40)

	v := d.view()
	for _, want := range []string{"00:00:00", "STOPPED", "No intervals recorded today."} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

// ============================================================
// History
// ============================================================

func TestHistoryRefresh(t *testing.T) {
	env := newTestEnv(t)
	yesterday := testNow.AddDate(0, 0, -1)
	end := yesterday.Add(2 * time.Hour)
	if _, err := env.tr.Add(yesterday, &end); err != nil {
		t.Fatal(err)
	}

	h := newHistoryModel(env.tr, env.clock, i18n.EnUS)
	h.setSize(100, 40)
	h, _ = h.update(h.refresh()())

	if len(h.days) != historyWindow {
		t.Fatalf("days = %d", len(h.days))
	}
	if last := h.days[len(h.days)-1]; last.key != "2024-03-01" {
		t.Fatalf("window should end today, got %s", last.key)
	}
	if d := h.days[len(h.days)-2]; d.total != 2*time.Hour || d.count != 1 {
		t.Fatalf("yesterday = %+v", d)
	}
	if !strings.Contains(h.view(), "02:00:00") {
		t.Fatal("table should list yesterday's total")
	}

	h, _ = h.update(press("h"))
	if h.offset != 1 {
		t.Fatal("left should page back")
	}
	h, _ = h.update(press("l"))
	h, _ = h.update(press("l"))
	if h.offset != 0 {
		t.Fatal("right should not page past today")
	}
}

func TestViewNames(t *testing.T) {
	names := viewNames(i18n.EnUS)
	if len(names) != viewCount {
		t.Fatalf("expected %d view names, got %d", viewCount, len(names))
	}
	if names[viewDashboard] != "Dashboard" || names[viewHistory] != "History" {
		t.Fatalf("names = %v", names)
	}
}

func TestSettingsListsStoredKeys(t *testing.T) {
	env := newTestEnv(t)
	if err := env.tr.Start(); err != nil {
		t.Fatal(err)
	}
	a := env.app(t)
	a.width, a.height = 100, 40
	a.settings.setSize(100, 30)

	a, cmd := update(t, a, press("3"))
	if cmd == nil {
		t.Fatal("opening settings should load stored keys")
	}
	a, _ = update(t, a, cmd())

	if len(a.settings.entries) == 0 {
		t.Fatal("expected stored entries")
	}
	if !strings.Contains(a.settings.view(), store.KeyIntervals) {
		t.Errorf("settings view should list %q", store.KeyIntervals)
	}
}
