package board

import "github.com/sadopc/flowdeck/internal/store"

// User-facing messages surfaced when an operation is blocked by a rule.
// Rule violations are rejected-operation signals, not errors.
const (
	MsgWIPBlocked    = "WIP limit is protecting you."
	MsgCommitBlocked = "Commit limit reached (3 per day)."
	MsgTaskLimit     = "Task limit reached. Go premium for unlimited tasks."
	MsgNoDoingTask   = "Start a Doing task to use Pomodoro."
)

// FreeTaskLimit caps the live task count for non-premium installs.
const FreeTaskLimit = 15

// WIPLimit returns the maximum concurrent doing tasks for a mode, and
// whether the mode has a limit at all.
func WIPLimit(m store.Mode) (int, bool) {
	switch m {
	case store.ModeKanban:
		return 2, true
	case store.ModeXP:
		return 1, true
	}
	return 0, false
}

// DailyCommitLimit returns the per-day commit cap for a mode, and
// whether the mode has one. Only Scrum caps commitments.
func DailyCommitLimit(m store.Mode) (int, bool) {
	if m == store.ModeScrum {
		return 3, true
	}
	return 0, false
}

// CanMoveToDoing reports whether another task may enter doing under
// mode m. Switching modes never retroactively evicts tasks already in
// doing; only new transitions are gated.
func CanMoveToDoing(tasks []store.Task, m store.Mode) bool {
	limit, ok := WIPLimit(m)
	if !ok {
		return true
	}
	doing := 0
	for _, t := range tasks {
		if t.Status == store.StatusDoing {
			doing++
		}
	}
	return doing < limit
}

// CanCommitMore reports whether another task may be committed to today
// under mode m.
func CanCommitMore(tasks []store.Task, m store.Mode) bool {
	limit, ok := DailyCommitLimit(m)
	if !ok {
		return true
	}
	committed := 0
	for _, t := range tasks {
		if t.CommittedToday {
			committed++
		}
	}
	return committed < limit
}
