package board

import (
	"fmt"
	"time"

	"github.com/sadopc/flowdeck/internal/store"
)

// SessionAppender receives completed phase records.
type SessionAppender interface {
	AppendPomodoroSession(store.PomodoroSession) error
}

// Timer is the two-phase pomodoro countdown. It is advanced by the
// caller's one-second Tick rather than rescheduling itself, so pausing
// cancels synchronously and a late tick can never mutate state.
//
// The timer never mutates tasks; it reads the doing column through the
// supplied accessor and appends session records through the appender.
type Timer struct {
	sessions SessionAppender
	doing    func() []store.Task

	phase      store.Phase
	remaining  int // seconds
	running    bool
	phaseStart time.Time
	taskID     string

	workDuration  time.Duration
	breakDuration time.Duration

	now func() time.Time
}

func NewTimer(sessions SessionAppender, doing func() []store.Task, work, brk time.Duration) *Timer {
	t := &Timer{
		sessions:      sessions,
		doing:         doing,
		phase:         store.PhaseWork,
		workDuration:  work,
		breakDuration: brk,
		now:           time.Now,
	}
	t.remaining = t.phaseSeconds(t.phase)
	return t
}

func (t *Timer) phaseSeconds(p store.Phase) int {
	if p == store.PhaseBreak {
		return int(t.breakDuration.Seconds())
	}
	return int(t.workDuration.Seconds())
}

// Start begins (or resumes) the countdown. A work phase with no
// selected task is rejected with MsgNoDoingTask and no state change;
// break phases never require a task.
func (t *Timer) Start() Result {
	if t.running {
		return Result{}
	}
	if t.phase == store.PhaseWork && t.taskID == "" {
		return blocked(MsgNoDoingTask)
	}
	if t.phaseStart.IsZero() {
		t.phaseStart = t.now()
	}
	t.running = true
	return applied()
}

// Pause freezes the countdown. Already-completed sessions are never
// lost; only the in-flight partial phase is at stake, and it stays
// resumable until Reset.
func (t *Timer) Pause() {
	t.running = false
}

// Reset stops the timer, restores the current phase's full duration,
// and discards the partial phase without logging a session.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.phaseSeconds(t.phase)
	t.phaseStart = time.Time{}
}

// Sync re-validates the task selection against the doing column. It
// must run after any external task-list mutation and before a start
// attempt. If the selected task left doing, the first available doing
// task is selected; with none, selection clears.
func (t *Timer) Sync() {
	doing := t.doing()
	for _, d := range doing {
		if d.ID == t.taskID {
			return
		}
	}
	if len(doing) > 0 {
		t.taskID = doing[0].ID
	} else {
		t.taskID = ""
	}
}

// Tick advances the countdown by one second. Ticks while stopped are
// no-ops. When a phase completes, the session is logged with the
// phase's nominal duration, the phase flips, and the timer chains
// straight into the next phase; it only stops if the next phase is
// work and no doing task remains.
func (t *Timer) Tick() error {
	if !t.running {
		return nil
	}

	t.remaining--
	if t.remaining > 0 {
		return nil
	}

	now := t.now()
	completed := store.PomodoroSession{
		DayKey:    store.DayKey(now),
		Phase:     t.phase,
		Minutes:   t.phaseSeconds(t.phase) / 60,
		StartedAt: t.phaseStart,
		EndedAt:   now,
	}
	if t.phase == store.PhaseWork {
		completed.TaskID = t.taskID
	}
	err := t.sessions.AppendPomodoroSession(completed)

	if t.phase == store.PhaseWork {
		t.phase = store.PhaseBreak
	} else {
		t.phase = store.PhaseWork
	}
	t.remaining = t.phaseSeconds(t.phase)
	t.phaseStart = now

	t.Sync()
	if t.phase == store.PhaseWork && t.taskID == "" {
		t.running = false
	}
	return err
}

// SetDurations applies new phase lengths. A stopped timer picks up the
// new duration immediately; a running phase finishes on its old clock.
func (t *Timer) SetDurations(work, brk time.Duration) {
	t.workDuration = work
	t.breakDuration = brk
	if !t.running {
		t.remaining = t.phaseSeconds(t.phase)
	}
}

func (t *Timer) Running() bool      { return t.running }
func (t *Timer) Phase() store.Phase { return t.phase }
func (t *Timer) TaskID() string     { return t.taskID }

// Remaining formats the countdown as MM:SS.
func (t *Timer) Remaining() string {
	r := t.remaining
	if r < 0 {
		r = 0
	}
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

func (t *Timer) RemainingSeconds() int { return t.remaining }

// PhaseLabel names the current phase for display.
func (t *Timer) PhaseLabel() string {
	if t.phase == store.PhaseBreak {
		return "Break"
	}
	return "Work"
}

// Elapsed is the seconds spent inside the current phase, clamped to
// [0, phase duration].
func (t *Timer) Elapsed() int {
	total := t.phaseSeconds(t.phase)
	e := total - t.remaining
	if e < 0 {
		return 0
	}
	if e > total {
		return total
	}
	return e
}

// WorkElapsed is Elapsed restricted to the work phase, used for the
// live focus-minutes display before the session is persisted.
func (t *Timer) WorkElapsed() int {
	if t.phase != store.PhaseWork {
		return 0
	}
	return t.Elapsed()
}
