package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flowdeck/internal/board"
	"github.com/sadopc/flowdeck/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	board *board.Board
	timer *board.Timer

	width  int
	height int

	activeView viewState
	showHelp   bool
	onboarding bool

	boardView boardModel
	pomodoro  pomodoroModel
	history   historyModel
	settings  settingsModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store) (App, error) {
	cfg, err := s.LoadSettings()
	if err != nil {
		return App{}, fmt.Errorf("load settings: %w", err)
	}

	b, err := board.New(s, cfg.Mode, cfg.Premium)
	if err != nil {
		return App{}, fmt.Errorf("load board: %w", err)
	}

	tm := board.NewTimer(s, b.Doing,
		time.Duration(cfg.WorkMinutes)*time.Minute,
		time.Duration(cfg.BreakMinutes)*time.Minute,
	)
	tm.Sync()

	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		board:      b,
		timer:      tm,
		activeView: viewBoard,
		onboarding: !cfg.OnboardingSeen,
		boardView:  newBoardModel(b, tm),
		pomodoro:   newPomodoroModel(s, b, tm),
		history:    newHistoryModel(s, cfg.Premium),
		settings:   newSettingsModel(s, cfg),
		help:       h,
	}, nil
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.pomodoro.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.boardView.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.onboarding {
			a.onboarding = false
			a.store.SetOnboardingSeen(true)
		}

		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewBoard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPomodoro
			return a, a.pomodoro.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewHistory
			return a, a.history.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// The countdown advances regardless of which tab is visible.
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		if msg.text != "" {
			a.status = msg.text
			a.statusError = msg.isError
		}
		return a, nil

	case dayEndedMsg:
		s := msg.summary
		a.status = fmt.Sprintf("Day %s closed: %d done of %d, %d carried over",
			s.DayKey, s.Done, s.Total, s.Carried)
		a.statusError = false
		return a, tea.Batch(a.pomodoro.refresh(), a.history.refresh())

	case settingsSavedMsg:
		a.applySettings(msg.settings)
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

// applySettings pushes a fresh settings record into the live board and
// timer.
func (a *App) applySettings(cfg store.Settings) {
	a.board.SetMode(cfg.Mode)
	a.board.SetPremium(cfg.Premium)
	a.timer.SetDurations(
		time.Duration(cfg.WorkMinutes)*time.Minute,
		time.Duration(cfg.BreakMinutes)*time.Minute,
	)
	a.history.premium = cfg.Premium
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewBoard:
		a.boardView, cmd = a.boardView.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewBoard:
		return a.boardView.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewPomodoro:
		return a.pomodoro.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewBoard:
		content = a.boardView.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewHistory:
		content = a.history.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("flowdeck")
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
	if a.onboarding {
		status = highlightStyle.Render(" Welcome! Add a task with n, then move it to Doing to start a Pomodoro.")
	} else if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.timer.Running() {
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %s %s", a.timer.PhaseLabel(), a.timer.Remaining()))
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
