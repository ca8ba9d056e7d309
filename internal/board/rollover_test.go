package board

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/flowdeck/internal/store"
)

func newTimerFor(b *Board, s *store.Store) *Timer {
	tm := NewTimer(s, b.Doing, 25*time.Minute, 5*time.Minute)
	tm.Sync()
	return tm
}

func TestEndDayArchivesAndCarriesForward(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)
	todo := mustAdd(t, b, "todo task")
	doing := mustAdd(t, b, "doing task")
	done := mustAdd(t, b, "done task")
	b.Transition(doing.ID, store.StatusDoing)
	b.Transition(done.ID, store.StatusDoing)
	b.Transition(done.ID, store.StatusDone)
	b.ToggleCommit(todo.ID)
	tm := newTimerFor(b, s)

	summary, err := b.EndDay(store.MoodGood, tm)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Done != 1 || summary.Total != 3 || summary.Carried != 2 {
		t.Fatalf("summary = %+v; want done=1 total=3 carried=2", summary)
	}

	// The archive holds the full pre-rollover snapshot.
	log, err := s.LoadDayLog(summary.DayKey)
	if err != nil {
		t.Fatal(err)
	}
	if log.Mood != store.MoodGood || log.Mode != store.ModeScrum {
		t.Errorf("log = mood %s mode %s; want good scrum", log.Mood, log.Mode)
	}
	if len(log.Tasks) != 3 {
		t.Fatalf("snapshot size = %d; want 3", len(log.Tasks))
	}
	if log.DoneCount() != 1 || log.CommittedCount() != 1 {
		t.Errorf("counts = done %d committed %d; want 1 1", log.DoneCount(), log.CommittedCount())
	}

	// The live list keeps only the non-done tasks, reset for the new day.
	live := b.Tasks()
	if len(live) != 2 {
		t.Fatalf("live tasks = %d; want 2", len(live))
	}
	for _, task := range live {
		if task.Status == store.StatusDone {
			t.Error("done tasks must be dropped from the live set")
		}
		if !task.RolledOver {
			t.Error("carried task should be marked rolled over")
		}
		if task.CommittedToday {
			t.Error("carry-over must clear the commit flag")
		}
		if task.CarriedOverFromDay != summary.DayKey {
			t.Errorf("carried from %q; want %q", task.CarriedOverFromDay, summary.DayKey)
		}
	}

	// And it is persisted.
	saved, _ := s.LoadActiveTasks()
	if len(saved) != 2 {
		t.Fatalf("persisted tasks = %d; want 2", len(saved))
	}
}

func TestEndDayRequiresMood(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)
	mustAdd(t, b, "task")
	tm := newTimerFor(b, s)

	_, err := b.EndDay("", tm)
	if !errors.Is(err, ErrMoodRequired) {
		t.Fatalf("err = %v; want ErrMoodRequired", err)
	}
	if len(b.Tasks()) != 1 {
		t.Fatal("aborted rollover must not change state")
	}
	if _, err := s.LoadDayLog(store.DayKey(time.Now())); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("aborted rollover must not archive")
	}
}

func TestEndDayFreezesTimer(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "focus")
	b.Transition(task.ID, store.StatusDoing)
	tm := newTimerFor(b, s)
	tm.Start()
	for i := 0; i < 120; i++ {
		tm.Tick()
	}

	if _, err := b.EndDay(store.MoodMeh, tm); err != nil {
		t.Fatal(err)
	}

	if tm.Running() {
		t.Fatal("rollover must stop the timer")
	}
	if tm.RemainingSeconds() != 25*60 {
		t.Fatal("rollover must reset the partial phase")
	}
	// The discarded partial phase is not logged.
	sessions, _ := s.LoadPomodoroSessions(store.DayKey(time.Now()))
	if len(sessions) != 0 {
		t.Fatalf("partial phase logged %d sessions; want 0", len(sessions))
	}
	// Selection re-synced against the carried-forward doing set.
	if tm.TaskID() != task.ID {
		t.Errorf("selected = %q; want %q", tm.TaskID(), task.ID)
	}
}

// orderPort records the order of persistence calls and can fail the
// archive write.
type orderPort struct {
	calls      []string
	failDayLog bool
	tasks      []store.Task
}

func (p *orderPort) LoadActiveTasks() ([]store.Task, error) { return p.tasks, nil }

func (p *orderPort) SaveActiveTasks(tasks []store.Task) error {
	p.calls = append(p.calls, "tasks")
	p.tasks = tasks
	return nil
}

func (p *orderPort) SaveDayLog(store.DayLog) error {
	p.calls = append(p.calls, "daylog")
	if p.failDayLog {
		return errors.New("disk full")
	}
	return nil
}

func TestEndDayArchivesBeforeOverwriting(t *testing.T) {
	port := &orderPort{tasks: []store.Task{{ID: "a", Status: store.StatusTodo}}}
	b, err := New(port, store.ModeKanban, false)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestStore(t)
	tm := newTimerFor(b, s)

	if _, err := b.EndDay(store.MoodHard, tm); err != nil {
		t.Fatal(err)
	}
	if len(port.calls) != 2 || port.calls[0] != "daylog" || port.calls[1] != "tasks" {
		t.Fatalf("call order = %v; want [daylog tasks]", port.calls)
	}
}

func TestEndDayAbortsWhenArchiveFails(t *testing.T) {
	port := &orderPort{
		tasks:      []store.Task{{ID: "a", Status: store.StatusTodo}},
		failDayLog: true,
	}
	b, err := New(port, store.ModeKanban, false)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestStore(t)
	tm := newTimerFor(b, s)

	if _, err := b.EndDay(store.MoodGood, tm); err == nil {
		t.Fatal("archive failure should surface")
	}
	live := b.Tasks()
	if len(live) != 1 || live[0].RolledOver {
		t.Fatal("failed archive must leave the live list untouched")
	}
}

func TestEndDayTwiceLastWriteWins(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)
	mustAdd(t, b, "task")
	tm := newTimerFor(b, s)

	if _, err := b.EndDay(store.MoodGood, tm); err != nil {
		t.Fatal(err)
	}
	summary, err := b.EndDay(store.MoodHard, tm)
	if err != nil {
		t.Fatal(err)
	}

	log, err := s.LoadDayLog(summary.DayKey)
	if err != nil {
		t.Fatal(err)
	}
	if log.Mood != store.MoodHard {
		t.Fatalf("mood = %s; second archive should replace the first", log.Mood)
	}
	logs, _ := s.LoadAllDayLogs()
	if len(logs) != 1 {
		t.Fatalf("day logs = %d; want 1 per day key", len(logs))
	}
}
