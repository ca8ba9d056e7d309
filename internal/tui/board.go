package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/flowdeck/internal/board"
	"github.com/sadopc/flowdeck/internal/store"
)

var boardColumns = []store.Status{store.StatusTodo, store.StatusDoing, store.StatusDone}

type boardModel struct {
	board  *board.Board
	timer  *board.Timer
	width  int
	height int

	col    int // index into boardColumns
	cursor int

	formActive bool
	form       *huh.Form
	formKind   string // "add", "edit", "mood"

	formTitle *string
	formFocus *string
	formMood  *string

	editingID   string
	lastDeleted *store.Task
}

func newBoardModel(b *board.Board, tm *board.Timer) boardModel {
	title, focus, mood := "", string(store.FocusWork), string(store.MoodGood)
	return boardModel{
		board:     b,
		timer:     tm,
		col:       0,
		formTitle: &title,
		formFocus: &focus,
		formMood:  &mood,
	}
}

func (m *boardModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m boardModel) column(status store.Status) []store.Task {
	var out []store.Task
	for _, t := range m.board.Tasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (m boardModel) selected() (store.Task, bool) {
	col := m.column(boardColumns[m.col])
	if m.cursor >= len(col) {
		return store.Task{}, false
	}
	return col[m.cursor], true
}

func (m *boardModel) clampCursor() {
	n := len(m.column(boardColumns[m.col]))
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.column(boardColumns[m.col]))-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Left):
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.Right):
		if m.col < len(boardColumns)-1 {
			m.col++
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.New):
		return m.showTaskForm("add", "", string(store.FocusWork))
	case key.Matches(keyMsg, keys.Edit):
		if t, ok := m.selected(); ok {
			m.editingID = t.ID
			return m.showTaskForm("edit", t.Title, string(t.Focus))
		}
	case key.Matches(keyMsg, keys.Delete):
		return m.deleteSelected()
	case key.Matches(keyMsg, keys.Undo):
		return m.undoDelete()
	case key.Matches(keyMsg, keys.Commit):
		if t, ok := m.selected(); ok {
			res, err := m.board.ToggleCommit(t.ID)
			return m, m.afterMutation(res, err)
		}
	case key.Matches(keyMsg, keys.Advance):
		return m.moveSelected(+1)
	case key.Matches(keyMsg, keys.SendBack):
		return m.moveSelected(-1)
	case key.Matches(keyMsg, keys.EndDay):
		return m.showMoodForm()
	}
	return m, nil
}

// afterMutation re-syncs the timer selection against the new doing set
// and reports any rule block or persistence error as a status line.
func (m boardModel) afterMutation(res board.Result, err error) tea.Cmd {
	m.timer.Sync()
	if err != nil {
		return func() tea.Msg { return errorStatus(fmt.Sprintf("Save failed: %v", err)) }
	}
	if s := blockedStatus(res); s.text != "" {
		return func() tea.Msg { return s }
	}
	return nil
}

func (m boardModel) deleteSelected() (boardModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	removed, res, err := m.board.Delete(t.ID)
	if res.Applied {
		m.lastDeleted = &removed
	}
	m.clampCursor()
	cmd := m.afterMutation(res, err)
	if cmd == nil && res.Applied {
		cmd = func() tea.Msg { return status(fmt.Sprintf("Deleted %q (u to undo)", removed.Title)) }
	}
	return m, cmd
}

func (m boardModel) undoDelete() (boardModel, tea.Cmd) {
	if m.lastDeleted == nil {
		return m, nil
	}
	res, err := m.board.Restore(*m.lastDeleted)
	if res.Applied {
		m.lastDeleted = nil
	}
	return m, m.afterMutation(res, err)
}

// moveSelected shifts the selected task one step along the
// todo <-> doing <-> done ladder.
func (m boardModel) moveSelected(dir int) (boardModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	idx := -1
	for i, s := range boardColumns {
		if s == t.Status {
			idx = i
		}
	}
	next := idx + dir
	if next < 0 || next >= len(boardColumns) {
		return m, nil
	}
	res, err := m.board.Transition(t.ID, boardColumns[next])
	m.clampCursor()
	return m, m.afterMutation(res, err)
}

// --- Forms ---

func (m boardModel) showTaskForm(kind, title, focus string) (boardModel, tea.Cmd) {
	*m.formTitle = title
	*m.formFocus = focus
	m.formKind = kind

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewSelect[string]().Title("Focus").
				Options(
					huh.NewOption("Work", string(store.FocusWork)),
					huh.NewOption("Personal", string(store.FocusPersonal)),
					huh.NewOption("Learning", string(store.FocusLearning)),
				).Value(m.formFocus),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m boardModel) showMoodForm() (boardModel, tea.Cmd) {
	*m.formMood = string(store.MoodGood)
	m.formKind = "mood"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("How was today?").
				Options(
					huh.NewOption("Good", string(store.MoodGood)),
					huh.NewOption("Meh", string(store.MoodMeh)),
					huh.NewOption("Hard", string(store.MoodHard)),
				).Value(m.formMood),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
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
		switch m.formKind {
		case "add":
			res, err := m.board.Add(*m.formTitle, store.Focus(*m.formFocus))
			return m, m.afterMutation(res, err)
		case "edit":
			res, err := m.board.Edit(m.editingID, *m.formTitle, store.Focus(*m.formFocus))
			return m, m.afterMutation(res, err)
		case "mood":
			mood := store.Mood(*m.formMood)
			summary, err := m.board.EndDay(mood, m.timer)
			m.cursor = 0
			if err != nil {
				return m, func() tea.Msg { return errorStatus(fmt.Sprintf("End day failed: %v", err)) }
			}
			return m, func() tea.Msg { return dayEndedMsg{summary: summary} }
		}
	}

	return m, cmd
}

// --- View ---

func (m boardModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		switch m.formKind {
		case "edit":
			title = titleStyle.Render("Edit Task")
		case "mood":
			title = titleStyle.Render("End Day")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	colWidth := max(20, (m.width-6)/3)

	var cols []string
	for i, status := range boardColumns {
		cols = append(cols, m.renderColumn(i, status, colWidth))
	}
	boardRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	header := titleStyle.Render(fmt.Sprintf("%s board", modeLabel(m.board.Mode())))
	hint := mutedStyle.Render("n: new  e: edit  d: delete  c: commit  enter: advance  b: send back  E: end day")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", boardRow, "", hint)
}

func (m boardModel) renderColumn(i int, status store.Status, width int) string {
	tasks := m.column(status)

	title := m.columnTitle(status, len(tasks))
	rows := []string{columnTitleStyle.Render(title), ""}

	if len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("—"))
	}
	for j, t := range tasks {
		rows = append(rows, m.renderTask(t, i == m.col && j == m.cursor, width-4))
	}

	style := columnStyle
	if i == m.col {
		style = activeColumnStyle
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (m boardModel) columnTitle(status store.Status, count int) string {
	switch status {
	case store.StatusTodo:
		return fmt.Sprintf("Todo (%d)", count)
	case store.StatusDoing:
		if limit, ok := board.WIPLimit(m.board.Mode()); ok {
			return fmt.Sprintf("Doing (%d/%d)", count, limit)
		}
		return fmt.Sprintf("Doing (%d)", count)
	default:
		return fmt.Sprintf("Done (%d)", count)
	}
}

func (m boardModel) renderTask(t store.Task, selected bool, width int) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}

	var marks []string
	if m.board.Mode() == store.ModeScrum && t.CommittedToday {
		marks = append(marks, warningStyle.Render("★"))
	}
	if t.RolledOver {
		marks = append(marks, mutedStyle.Render("↻"))
	}
	if t.Status == store.StatusDoing && t.ID == m.timer.TaskID() {
		marks = append(marks, successStyle.Render("●"))
	}

	title := t.Title
	if lipgloss.Width(title) > width-8 {
		title = title[:max(0, width-9)] + "…"
	}

	line := style.Render(cursor + title)
	if len(marks) > 0 {
		line += " " + strings.Join(marks, "")
	}
	line += mutedStyle.Render(" · " + string(t.Focus))
	return line
}
