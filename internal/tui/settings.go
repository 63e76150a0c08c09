package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/store"
)

type settingsModel struct {
	prefs  Prefs
	lang   i18n.Lang
	width  int
	height int

	entries    []store.Entry
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	language *string
}

func newSettingsModel(p Prefs, lang i18n.Lang) settingsModel {
	l := string(lang)
	return settingsModel{
		prefs:    p,
		lang:     lang,
		language: &l,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	entries []store.Entry
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.prefs.All()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsDataMsg{entries: entries}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.entries = msg.entries
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.language = string(s.lang)

	opts := make([]huh.Option[string], 0, len(i18n.Supported))
	for _, l := range i18n.Supported {
		opts = append(opts, huh.NewOption(l.Name(), string(l)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(i18n.T(s.lang, i18n.Language)).
				Options(opts...).
				Value(s.language),
		).Title(i18n.T(s.lang, i18n.Settings)),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		return s, s.saveLanguage()
	}

	return s, cmd
}

func (s settingsModel) saveLanguage() tea.Cmd {
	l, ok := i18n.Parse(*s.language)
	if !ok {
		return statusCmd(fmt.Sprintf("unsupported language %q", *s.language), true)
	}
	if err := i18n.SaveLang(s.prefs, l); err != nil {
		return statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return func() tea.Msg { return languageChangedMsg{lang: l} }
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render(i18n.T(s.lang, i18n.Settings))

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	label := lipgloss.NewStyle().Width(24).Render(i18n.T(s.lang, i18n.Language))

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(s.lang.Name())))
	rows = append(rows, "", mutedStyle.Render("enter: "+i18n.T(s.lang, i18n.Edit)), "")

	// What is kept on disk, one row per key.
	for _, e := range s.entries {
		name := lipgloss.NewStyle().Width(26).Render(e.Key)
		updated := ""
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s %8d B  %s", name, len(e.Value), updated)))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
