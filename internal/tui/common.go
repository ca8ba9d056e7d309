package tui

import (
	"fmt"

	"github.com/sadopc/flowdeck/internal/board"
	"github.com/sadopc/flowdeck/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewBoard viewState = iota
	viewPomodoro
	viewHistory
	viewSettings
)

var viewNames = []string{"Board", "Pomodoro", "History", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg struct{}

type dayEndedMsg struct {
	summary board.Summary
}

type settingsSavedMsg struct {
	settings store.Settings
}

type focusTodayMsg struct {
	minutes int
}

// --- Helpers ---

func status(text string) statusMsg      { return statusMsg{text: text} }
func errorStatus(text string) statusMsg { return statusMsg{text: text, isError: true} }

// blockedStatus turns a rejected board operation into a status line.
// Silent no-ops produce no message.
func blockedStatus(res board.Result) statusMsg {
	if res.Applied || res.Message == "" {
		return statusMsg{}
	}
	return errorStatus(res.Message)
}

func moodLabel(m store.Mood) string {
	switch m {
	case store.MoodGood:
		return "Good"
	case store.MoodMeh:
		return "Meh"
	case store.MoodHard:
		return "Hard"
	}
	return string(m)
}

func modeLabel(m store.Mode) string {
	switch m {
	case store.ModeKanban:
		return "Kanban"
	case store.ModeXP:
		return "XP"
	default:
		return "Scrum"
	}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
