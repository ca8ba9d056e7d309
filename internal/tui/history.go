package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flowdeck/internal/store"
)

// History depth in days. Free tier sees one week back; premium a month.
const (
	historyDaysFree    = 7
	historyDaysPremium = 30
)

type historyModel struct {
	store  *store.Store
	width  int
	height int

	premium bool

	logs    []store.DayLog
	focus   []store.DayFocus
	cursor  int
	viewing bool // true = day detail open

	chart barchart.Model
}

func newHistoryModel(s *store.Store, premium bool) historyModel {
	return historyModel{
		store:   s,
		premium: premium,
		chart:   barchart.New(60, 10),
	}
}

func (m *historyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m historyModel) depth() int {
	if m.premium {
		return historyDaysPremium
	}
	return historyDaysFree
}

type historyDataMsg struct {
	logs  []store.DayLog
	focus []store.DayFocus
}

func (m historyModel) refresh() tea.Cmd {
	depth := m.depth()
	return func() tea.Msg {
		logs, err := m.store.LoadAllDayLogs()
		if err != nil {
			return errorStatus(fmt.Sprintf("Load history: %v", err))
		}
		now := time.Now()
		from := store.DayKey(now.AddDate(0, 0, -(depth - 1)))
		to := store.DayKey(now)
		focus, err := m.store.FocusMinutesByDay(from, to)
		if err != nil {
			return errorStatus(fmt.Sprintf("Load focus stats: %v", err))
		}

		// History depth also bounds the archive list.
		var visible []store.DayLog
		for _, l := range logs {
			if l.DayKey >= from {
				visible = append(visible, l)
			}
		}
		return historyDataMsg{logs: visible, focus: focus}
	}
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		m.logs = msg.logs
		m.focus = msg.focus
		if m.cursor >= len(m.logs) {
			m.cursor = max(0, len(m.logs)-1)
		}
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		if m.viewing {
			if key.Matches(msg, keys.Back) {
				m.viewing = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.logs)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.logs) > 0 {
				m.viewing = true
			}
		}
	}
	return m, nil
}

func (m *historyModel) buildChart() {
	chartWidth := max(20, m.width-10)
	m.chart = barchart.New(chartWidth, 10)

	byDay := make(map[string]int, len(m.focus))
	for _, d := range m.focus {
		byDay[d.DayKey] = d.Minutes
	}

	now := time.Now()
	var bars []barchart.BarData
	for i := m.depth() - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		minutes := byDay[store.DayKey(day)]
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if minutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.Format("02"),
			Values: []barchart.BarValue{
				{Name: "focus", Value: float64(minutes), Style: style},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m historyModel) view() string {
	w := m.width - 4

	if m.viewing && m.cursor < len(m.logs) {
		return m.renderDetail(w)
	}

	title := titleStyle.Render(fmt.Sprintf("History · last %d days", m.depth()))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render("Focus minutes"))
	rows = append(rows, m.chart.View())
	rows = append(rows, "")

	if len(m.logs) == 0 {
		rows = append(rows, mutedStyle.Render("No archived days yet. Press E on the board to end a day."))
	} else {
		header := mutedStyle.Render(fmt.Sprintf("  %-12s %-6s %-8s %s", "Day", "Mood", "Mode", "Done"))
		rows = append(rows, header)
		for i, l := range m.logs {
			cursor := "  "
			style := normalItemStyle
			if i == m.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			row := style.Render(fmt.Sprintf("%s%-12s %-6s %-8s %d/%d",
				cursor, l.DayKey, moodLabel(l.Mood), modeLabel(l.Mode), l.DoneCount(), len(l.Tasks)))
			rows = append(rows, row)
		}
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  enter: details"))
	}

	if !m.premium {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Premium unlocks 30 days of history."))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m historyModel) renderDetail(w int) string {
	l := m.logs[m.cursor]

	title := titleStyle.Render(l.DayKey)
	meta := mutedStyle.Render(fmt.Sprintf("Mood %s · %s · archived %s",
		moodLabel(l.Mood), modeLabel(l.Mode), l.ArchivedAt.Local().Format("15:04")))
	counts := highlightStyle.Render(fmt.Sprintf("%d done · %d committed · %d committed+done",
		l.DoneCount(), l.CommittedCount(), l.CommittedDoneCount()))

	var rows []string
	rows = append(rows, title, meta, counts, "")
	for _, t := range l.Tasks {
		mark := mutedStyle.Render("·")
		if t.Status == store.StatusDone {
			mark = successStyle.Render("✓")
		} else if t.Status == store.StatusDoing {
			mark = warningStyle.Render("~")
		}
		line := fmt.Sprintf("  %s %s", mark, t.Title)
		if t.CommittedToday {
			line += " " + warningStyle.Render("★")
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", mutedStyle.Render("  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
