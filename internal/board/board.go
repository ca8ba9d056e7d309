package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/flowdeck/internal/store"
)

// Port is the slice of the persistence layer the board needs. The
// sqlite store satisfies it.
type Port interface {
	LoadActiveTasks() ([]store.Task, error)
	SaveActiveTasks([]store.Task) error
	SaveDayLog(store.DayLog) error
}

// Result reports whether a board operation was applied. Message carries
// the user-facing reason when the operation was blocked by a rule;
// silent no-ops (empty title, unknown id) leave it empty.
type Result struct {
	Applied bool
	Message string
}

func applied() Result           { return Result{Applied: true} }
func blocked(msg string) Result { return Result{Message: msg} }

// Board owns the live task list for the active day. Every mutating
// operation persists the full list before returning.
type Board struct {
	port    Port
	tasks   []store.Task
	mode    store.Mode
	premium bool
	now     func() time.Time
}

// New loads the active task list from the port.
func New(port Port, mode store.Mode, premium bool) (*Board, error) {
	tasks, err := port.LoadActiveTasks()
	if err != nil {
		return nil, err
	}
	return &Board{
		port:    port,
		tasks:   tasks,
		mode:    mode,
		premium: premium,
		now:     time.Now,
	}, nil
}

func (b *Board) Mode() store.Mode     { return b.mode }
func (b *Board) SetMode(m store.Mode) { b.mode = m }
func (b *Board) SetPremium(on bool)   { b.premium = on }

// Tasks returns a copy of the live task list.
func (b *Board) Tasks() []store.Task {
	out := make([]store.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Doing returns the tasks currently in the doing column, in board
// order. The timer reads its task selection from this set.
func (b *Board) Doing() []store.Task {
	var out []store.Task
	for _, t := range b.tasks {
		if t.Status == store.StatusDoing {
			out = append(out, t)
		}
	}
	return out
}

// Add appends a new todo task. Blank titles are a silent no-op; the
// free tier rejects the 16th task.
func (b *Board) Add(title string, focus store.Focus) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, nil
	}
	if !b.premium && len(b.tasks) >= FreeTaskLimit {
		return blocked(MsgTaskLimit), nil
	}

	now := b.now()
	b.tasks = append(b.tasks, store.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    store.StatusTodo,
		Focus:     focus,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return applied(), b.persist()
}

// Edit updates a task's title and focus. Blank titles leave the task
// untouched.
func (b *Board) Edit(id, title string, focus store.Focus) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, nil
	}
	t := b.find(id)
	if t == nil {
		return Result{}, nil
	}
	t.Title = title
	t.Focus = focus
	t.UpdatedAt = b.now()
	return applied(), b.persist()
}

// Delete removes a task and returns the removed record so the caller
// can offer undo via Restore.
func (b *Board) Delete(id string) (store.Task, Result, error) {
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			err := b.persist()
			return t, applied(), err
		}
	}
	return store.Task{}, Result{}, nil
}

// Restore re-inserts a previously deleted task as-is. Undo is
// best-effort re-insertion, not a transactional rollback.
func (b *Board) Restore(t store.Task) (Result, error) {
	if !b.premium && len(b.tasks) >= FreeTaskLimit {
		return blocked(MsgTaskLimit), nil
	}
	b.tasks = append(b.tasks, t)
	return applied(), b.persist()
}

// ToggleCommit flips a task's committed-today flag. Only meaningful
// under Scrum; committing on is gated by the daily cap, committing off
// is always allowed.
func (b *Board) ToggleCommit(id string) (Result, error) {
	if b.mode != store.ModeScrum {
		return Result{}, nil
	}
	t := b.find(id)
	if t == nil {
		return Result{}, nil
	}
	if !t.CommittedToday && !CanCommitMore(b.tasks, b.mode) {
		return blocked(MsgCommitBlocked), nil
	}
	t.CommittedToday = !t.CommittedToday
	t.UpdatedAt = b.now()
	return applied(), b.persist()
}

// Transition moves a task one step along todo <-> doing <-> done.
// Entering doing is gated by the mode's WIP limit; any other pairing
// outside the ladder is a silent no-op.
func (b *Board) Transition(id string, target store.Status) (Result, error) {
	t := b.find(id)
	if t == nil {
		return Result{}, nil
	}

	switch {
	case t.Status == store.StatusTodo && target == store.StatusDoing:
		if !CanMoveToDoing(b.tasks, b.mode) {
			return blocked(MsgWIPBlocked), nil
		}
	case t.Status == store.StatusDoing && target == store.StatusDone:
	case t.Status == store.StatusDoing && target == store.StatusTodo:
	case t.Status == store.StatusDone && target == store.StatusDoing:
	default:
		return Result{}, nil
	}

	t.Status = target
	t.UpdatedAt = b.now()
	return applied(), b.persist()
}

func (b *Board) find(id string) *store.Task {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return &b.tasks[i]
		}
	}
	return nil
}

func (b *Board) persist() error {
	return b.port.SaveActiveTasks(b.tasks)
}
