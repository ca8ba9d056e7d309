package board

import (
	"testing"

	"github.com/sadopc/flowdeck/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestBoard(t *testing.T, mode store.Mode, premium bool) (*Board, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	b, err := New(s, mode, premium)
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b, s
}

func mustAdd(t *testing.T, b *Board, title string) store.Task {
	t.Helper()
	res, err := b.Add(title, store.FocusWork)
	if err != nil {
		t.Fatalf("add %q: %v", title, err)
	}
	if !res.Applied {
		t.Fatalf("add %q blocked: %q", title, res.Message)
	}
	tasks := b.Tasks()
	return tasks[len(tasks)-1]
}

// ============================================================
// Add
// ============================================================

func TestAddTask(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)

	task := mustAdd(t, b, "  write report  ")
	if task.Title != "write report" {
		t.Errorf("title not trimmed: %q", task.Title)
	}
	if task.Status != store.StatusTodo {
		t.Errorf("new task status = %s; want todo", task.Status)
	}
	if task.ID == "" {
		t.Error("task should get an id")
	}
	if task.CommittedToday || task.RolledOver {
		t.Error("daily flags should start false")
	}

	// Persisted synchronously.
	saved, err := s.LoadActiveTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].ID != task.ID {
		t.Fatalf("task not persisted: %+v", saved)
	}
}

func TestAddBlankTitleIsNoOp(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)

	for _, title := range []string{"", "   ", "\t\n"} {
		res, err := b.Add(title, store.FocusWork)
		if err != nil {
			t.Fatal(err)
		}
		if res.Applied || res.Message != "" {
			t.Errorf("blank title %q should be a silent no-op", title)
		}
	}
	if len(b.Tasks()) != 0 {
		t.Fatal("no task should have been added")
	}
}

func TestAddFreeTierLimit(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)

	for i := 0; i < FreeTaskLimit; i++ {
		mustAdd(t, b, "task")
	}

	res, err := b.Add("one too many", store.FocusWork)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("16th task should be rejected on free tier")
	}
	if res.Message != MsgTaskLimit {
		t.Errorf("message = %q; want %q", res.Message, MsgTaskLimit)
	}
	if len(b.Tasks()) != FreeTaskLimit {
		t.Fatalf("count = %d; want %d", len(b.Tasks()), FreeTaskLimit)
	}
}

func TestAddPremiumUnlimited(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, true)

	for i := 0; i < FreeTaskLimit; i++ {
		mustAdd(t, b, "task")
	}
	mustAdd(t, b, "sixteenth")

	if len(b.Tasks()) != FreeTaskLimit+1 {
		t.Fatalf("count = %d; want %d", len(b.Tasks()), FreeTaskLimit+1)
	}
}

// ============================================================
// Edit / Delete / Restore
// ============================================================

func TestEditTask(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "draft")

	res, err := b.Edit(task.ID, "final", store.FocusLearning)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Applied {
		t.Fatal("edit should apply")
	}

	got := b.Tasks()[0]
	if got.Title != "final" || got.Focus != store.FocusLearning {
		t.Errorf("edit not applied: %+v", got)
	}
	if !got.UpdatedAt.After(task.UpdatedAt) && !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Error("updated_at should move forward")
	}
}

func TestEditBlankTitleIsNoOp(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "keep me")

	res, err := b.Edit(task.ID, "   ", store.FocusPersonal)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("blank edit should be a no-op")
	}
	if got := b.Tasks()[0]; got.Title != "keep me" || got.Focus != store.FocusWork {
		t.Errorf("task mutated by blank edit: %+v", got)
	}
}

func TestDeleteAndRestore(t *testing.T) {
	b, s := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "oops")

	removed, res, err := b.Delete(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Applied {
		t.Fatal("delete should apply")
	}
	if removed.ID != task.ID {
		t.Fatal("delete should return the removed record")
	}
	if len(b.Tasks()) != 0 {
		t.Fatal("task should be gone")
	}

	// Undo re-inserts the exact record.
	if _, err := b.Restore(removed); err != nil {
		t.Fatal(err)
	}
	saved, _ := s.LoadActiveTasks()
	if len(saved) != 1 || saved[0].ID != task.ID || saved[0].Title != "oops" {
		t.Fatalf("restore mismatch: %+v", saved)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	mustAdd(t, b, "stay")

	_, res, err := b.Delete("nope")
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("unknown id should be a no-op")
	}
	if len(b.Tasks()) != 1 {
		t.Fatal("task list should be unchanged")
	}
}

// ============================================================
// Commit toggle
// ============================================================

func TestToggleCommitScrumCap(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, mustAdd(t, b, "task").ID)
	}

	for i := 0; i < 3; i++ {
		res, err := b.ToggleCommit(ids[i])
		if err != nil {
			t.Fatal(err)
		}
		if !res.Applied {
			t.Fatalf("commit %d should apply", i)
		}
	}

	// Fourth commit hits the cap.
	res, err := b.ToggleCommit(ids[3])
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("commit beyond cap should be rejected")
	}
	if res.Message != MsgCommitBlocked {
		t.Errorf("message = %q; want %q", res.Message, MsgCommitBlocked)
	}

	// Toggling off is always allowed, even at the cap.
	res, err = b.ToggleCommit(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if !res.Applied {
		t.Fatal("uncommit should always apply")
	}
	if b.Tasks()[0].CommittedToday {
		t.Fatal("task should be uncommitted")
	}
}

func TestToggleCommitOutsideScrumIsNoOp(t *testing.T) {
	for _, mode := range []store.Mode{store.ModeKanban, store.ModeXP} {
		b, _ := newTestBoard(t, mode, false)
		task := mustAdd(t, b, "task")

		res, err := b.ToggleCommit(task.ID)
		if err != nil {
			t.Fatal(err)
		}
		if res.Applied {
			t.Errorf("commit under %s should be a no-op", mode)
		}
		if b.Tasks()[0].CommittedToday {
			t.Errorf("task committed under %s", mode)
		}
	}
}

// ============================================================
// Transitions
// ============================================================

func TestTransitionLadder(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "climb")

	steps := []store.Status{store.StatusDoing, store.StatusDone, store.StatusDoing, store.StatusTodo}
	for _, target := range steps {
		res, err := b.Transition(task.ID, target)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Applied {
			t.Fatalf("transition to %s should apply", target)
		}
		if got := b.Tasks()[0].Status; got != target {
			t.Fatalf("status = %s; want %s", got, target)
		}
	}
}

func TestTransitionNoSkipping(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	task := mustAdd(t, b, "no shortcuts")

	// todo -> done is not in the contract.
	res, err := b.Transition(task.ID, store.StatusDone)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("todo->done should be a no-op")
	}

	// Neither is done -> todo.
	b.Transition(task.ID, store.StatusDoing)
	b.Transition(task.ID, store.StatusDone)
	res, _ = b.Transition(task.ID, store.StatusTodo)
	if res.Applied {
		t.Fatal("done->todo should be a no-op")
	}
	if got := b.Tasks()[0].Status; got != store.StatusDone {
		t.Fatalf("status = %s; want done", got)
	}
}

func TestTransitionWIPGate(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeXP, false)
	first := mustAdd(t, b, "first")
	second := mustAdd(t, b, "second")

	if res, _ := b.Transition(first.ID, store.StatusDoing); !res.Applied {
		t.Fatal("first move to doing should apply under xp")
	}

	res, err := b.Transition(second.ID, store.StatusDoing)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied {
		t.Fatal("second doing task should be blocked under xp")
	}
	if res.Message != MsgWIPBlocked {
		t.Errorf("message = %q; want %q", res.Message, MsgWIPBlocked)
	}

	// doing -> done frees the slot.
	b.Transition(first.ID, store.StatusDone)
	if res, _ := b.Transition(second.ID, store.StatusDoing); !res.Applied {
		t.Fatal("slot should be free after first task is done")
	}
}

func TestModeSwitchDoesNotEvict(t *testing.T) {
	b, _ := newTestBoard(t, store.ModeScrum, false)
	for i := 0; i < 3; i++ {
		task := mustAdd(t, b, "busy")
		b.Transition(task.ID, store.StatusDoing)
	}

	// Three doing tasks, then switch to kanban (limit 2). Existing
	// tasks stay; only new transitions are gated.
	b.SetMode(store.ModeKanban)
	if got := len(b.Doing()); got != 3 {
		t.Fatalf("doing count = %d; want 3", got)
	}

	extra := mustAdd(t, b, "blocked")
	res, _ := b.Transition(extra.ID, store.StatusDoing)
	if res.Applied {
		t.Fatal("new transition should be gated after mode switch")
	}
}
