package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/daytally/internal/i18n"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewHistory
	viewSettings
)

const viewCount = 3

func viewNames(lang i18n.Lang) []string {
	return []string{
		i18n.T(lang, i18n.Dashboard),
		i18n.T(lang, i18n.History),
		i18n.T(lang, i18n.Settings),
	}
}

// --- Messages ---

// tickMsg carries the generation of the ticker that produced it so ticks
// from a stopped ticker can be dropped.
type tickMsg struct {
	id   int
	time time.Time
}

// storeChangedMsg is sent by the interval store subscription after every
// mutation.
type storeChangedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type languageChangedMsg struct {
	lang i18n.Lang
}

// openExportMsg asks the root model to show the export picker.
type openExportMsg struct{}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
