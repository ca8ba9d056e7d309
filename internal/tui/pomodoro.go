package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flowdeck/internal/board"
	"github.com/sadopc/flowdeck/internal/store"
)

type pomodoroModel struct {
	store  *store.Store
	board  *board.Board
	timer  *board.Timer
	width  int
	height int

	// Completed focus minutes persisted for today; the live partial
	// phase is added on top at render time.
	loggedToday int
}

func newPomodoroModel(s *store.Store, b *board.Board, tm *board.Timer) pomodoroModel {
	return pomodoroModel{store: s, board: b, timer: tm}
}

func (m *pomodoroModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m pomodoroModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.store.LoadPomodoroSessions(store.DayKey(time.Now()))
		if err != nil {
			return errorStatus(fmt.Sprintf("Load sessions: %v", err))
		}
		minutes := 0
		for _, s := range sessions {
			if s.Phase == store.PhaseWork {
				minutes += s.Minutes
			}
		}
		return focusTodayMsg{minutes: minutes}
	}
}

func (m pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.tick()

	case focusTodayMsg:
		m.loggedToday = msg.minutes
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return m.toggle()
		case key.Matches(msg, keys.Reset):
			m.timer.Reset()
			return m, nil
		}
	}
	return m, nil
}

// tick advances the countdown by one second. A completed phase shows up
// as a persisted session, so the focus total is reloaded when the phase
// flips.
func (m pomodoroModel) tick() (pomodoroModel, tea.Cmd) {
	if !m.timer.Running() {
		return m, nil
	}
	before := m.timer.Phase()
	err := m.timer.Tick()
	if err != nil {
		return m, func() tea.Msg { return errorStatus(fmt.Sprintf("Log session: %v", err)) }
	}
	if m.timer.Phase() != before {
		var note tea.Cmd
		if m.timer.Phase() == store.PhaseBreak {
			note = func() tea.Msg { return status("Work logged. Break time! \a") }
		} else if m.timer.Running() {
			note = func() tea.Msg { return status("Back to work! \a") }
		} else {
			note = func() tea.Msg { return status("Break over. Pick a Doing task to continue.") }
		}
		return m, tea.Batch(m.refresh(), note)
	}
	return m, nil
}

func (m pomodoroModel) toggle() (pomodoroModel, tea.Cmd) {
	if m.timer.Running() {
		m.timer.Pause()
		return m, nil
	}
	m.timer.Sync()
	if res := m.timer.Start(); !res.Applied && res.Message != "" {
		s := errorStatus(res.Message)
		return m, func() tea.Msg { return s }
	}
	return m, nil
}

func (m pomodoroModel) boundTaskTitle() string {
	id := m.timer.TaskID()
	if id == "" {
		return ""
	}
	for _, t := range m.board.Tasks() {
		if t.ID == id {
			return t.Title
		}
	}
	return ""
}

func (m pomodoroModel) view() string {
	w := m.width - 4

	title := titleStyle.Render("Pomodoro")

	display := timerStyle.Width(w - 6).Render(m.timer.Remaining())
	if m.timer.Running() && m.timer.Phase() == store.PhaseBreak {
		display = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(m.timer.Remaining())
	}

	var phaseLabel string
	if m.timer.Running() {
		phaseLabel = highlightStyle.Bold(true).Render(m.timer.PhaseLabel())
	} else {
		phaseLabel = mutedStyle.Render(m.timer.PhaseLabel() + " · paused")
	}

	task := ""
	if name := m.boundTaskTitle(); name != "" {
		task = normalItemStyle.Render("Focusing on: " + name)
	} else {
		task = mutedStyle.Render("No Doing task selected")
	}

	focusToday := m.loggedToday + m.timer.WorkElapsed()/60
	totals := mutedStyle.Render("Focus today: " + formatMinutes(focusToday))

	controls := mutedStyle.Render("space: start/pause  r: reset")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		display,
		phaseLabel,
		"",
		task,
		totals,
		"",
		controls,
	)
	return panelStyle.Width(w).Render(content)
}
