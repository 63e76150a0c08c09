package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/tracker"
)

const historyWindow = 7

type daySummary struct {
	key   string
	date  time.Time
	total time.Duration
	count int
}

type historyModel struct {
	tracker *tracker.Store
	clock   clock.Clock
	lang    i18n.Lang
	width   int
	height  int

	days   []daySummary
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newHistoryModel(tr *tracker.Store, clk clock.Clock, lang i18n.Lang) historyModel {
	return historyModel{
		tracker: tr,
		clock:   clk,
		lang:    lang,
		chart:   barchart.New(60, 12),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
	h.buildChart()
}

type historyDataMsg struct {
	days []daySummary
}

func (h historyModel) refresh() tea.Cmd {
	tr, from := h.tracker, h.windowStart()
	return func() tea.Msg {
		days := make([]daySummary, 0, historyWindow)
		for i := 0; i < historyWindow; i++ {
			d := from.AddDate(0, 0, i)
			k := timefmt.DayKey(d)
			days = append(days, daySummary{
				key:   k,
				date:  d,
				total: tr.TotalFor(k),
				count: len(tr.ForDay(k)),
			})
		}
		return historyDataMsg{days: days}
	}
}

// windowStart is the first day of the visible window.
func (h historyModel) windowStart() time.Time {
	today := timefmt.StartOfDay(h.clock.Now())
	return today.AddDate(0, 0, 1-historyWindow*(h.offset+1))
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.days = msg.days
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.offset > 0 {
				h.offset--
			}
			return h, h.refresh()
		case key.Matches(msg, keys.Stop):
			return h, func() tea.Msg { return openExportMsg{} }
		}
	}
	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if h.height > 30 {
		chartHeight = 16
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, d := range h.days {
		style := barStyle
		if d.total == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.date.Format("Mon 02"),
			Values: []barchart.BarValue{{
				Name:  d.key,
				Value: d.total.Hours(),
				Style: style,
			}},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	from := h.windowStart()
	to := from.AddDate(0, 0, historyWindow-1)
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s - %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(i18n.T(h.lang, i18n.History)), "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: navigate  x: " + i18n.T(h.lang, i18n.ExportHistory))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", h.renderTable(w), "", nav,
		),
	)
}

func (h historyModel) renderTable(w int) string {
	var total time.Duration
	for _, d := range h.days {
		total += d.total
	}
	if total == 0 {
		return mutedStyle.Render("  " + i18n.T(h.lang, i18n.NoIntervals))
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %8s",
		i18n.T(h.lang, i18n.Date), i18n.T(h.lang, i18n.Duration), "#"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 32))))

	for _, d := range h.days {
		if d.count == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %8d", d.key, timefmt.Clock(d.total), d.count))
	}
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-12s %10s",
		i18n.T(h.lang, i18n.TotalTime), timefmt.Clock(total))))

	return strings.Join(rows, "\n")
}
