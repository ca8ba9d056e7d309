package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flowdeck/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   store.Settings
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	mode         *string
	darkMode     *bool
	premium      *bool
	workMinutes  *string
	breakMinutes *string
}

func newSettingsModel(s *store.Store, cfg store.Settings) settingsModel {
	mode, work, brk := "", "", ""
	dark, prem := false, false
	return settingsModel{
		store:        s,
		settings:     cfg,
		mode:         &mode,
		darkMode:     &dark,
		premium:      &prem,
		workMinutes:  &work,
		breakMinutes: &brk,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.store.LoadSettings()
		if err != nil {
			return errorStatus(fmt.Sprintf("Load settings: %v", err))
		}
		return settingsSavedMsg{settings: cfg}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsSavedMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.mode = string(m.settings.Mode)
	*m.darkMode = m.settings.DarkMode
	*m.premium = m.settings.Premium
	*m.workMinutes = strconv.Itoa(m.settings.WorkMinutes)
	*m.breakMinutes = strconv.Itoa(m.settings.BreakMinutes)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Flow mode").
				Options(
					huh.NewOption("Scrum — commit up to 3 tasks a day", string(store.ModeScrum)),
					huh.NewOption("Kanban — at most 2 tasks in Doing", string(store.ModeKanban)),
					huh.NewOption("XP — one task at a time", string(store.ModeXP)),
				).Value(m.mode),
			huh.NewConfirm().Title("Dark mode").Value(m.darkMode),
			huh.NewConfirm().Title("Premium").Value(m.premium),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Work phase (min)").Value(m.workMinutes),
			huh.NewInput().Title("Break phase (min)").Value(m.breakMinutes),
		).Title("Timer (premium)"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.save()
	}

	return m, cmd
}

func (m settingsModel) save() tea.Cmd {
	mode := store.Mode(*m.mode)
	dark := *m.darkMode
	premium := *m.premium
	work := parseMinutes(*m.workMinutes, m.settings.WorkMinutes)
	brk := parseMinutes(*m.breakMinutes, m.settings.BreakMinutes)

	return func() tea.Msg {
		if err := m.store.SetMode(mode); err != nil {
			return errorStatus(fmt.Sprintf("Save settings: %v", err))
		}
		m.store.SetDarkMode(dark)
		m.store.SetPremium(premium)

		// Timer duration overrides are a premium perk; free installs
		// keep the 25/5 defaults.
		if premium {
			m.store.SetWorkMinutes(work)
			m.store.SetBreakMinutes(brk)
		}

		cfg, err := m.store.LoadSettings()
		if err != nil {
			return errorStatus(fmt.Sprintf("Reload settings: %v", err))
		}
		return settingsSavedMsg{settings: cfg}
	}
}

func parseMinutes(s string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-18s %s", "Flow mode", highlightStyle.Render(modeLabel(m.settings.Mode))),
		fmt.Sprintf("  %-18s %s", "Dark mode", onOff(m.settings.DarkMode)),
		fmt.Sprintf("  %-18s %s", "Premium", onOff(m.settings.Premium)),
		fmt.Sprintf("  %-18s %s", "Work phase", highlightStyle.Render(fmt.Sprintf("%d min", m.settings.WorkMinutes))),
		fmt.Sprintf("  %-18s %s", "Break phase", highlightStyle.Render(fmt.Sprintf("%d min", m.settings.BreakMinutes))),
		"",
		hint,
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
