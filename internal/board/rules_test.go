package board

import (
	"testing"

	"github.com/sadopc/flowdeck/internal/store"
)

func tasksWith(doing, committed int) []store.Task {
	var tasks []store.Task
	for i := 0; i < doing; i++ {
		tasks = append(tasks, store.Task{ID: "d", Status: store.StatusDoing})
	}
	for i := 0; i < committed; i++ {
		tasks = append(tasks, store.Task{ID: "c", Status: store.StatusTodo, CommittedToday: true})
	}
	return tasks
}

func TestWIPLimit(t *testing.T) {
	tests := []struct {
		mode  store.Mode
		limit int
		ok    bool
	}{
		{store.ModeScrum, 0, false},
		{store.ModeKanban, 2, true},
		{store.ModeXP, 1, true},
	}
	for _, tc := range tests {
		limit, ok := WIPLimit(tc.mode)
		if limit != tc.limit || ok != tc.ok {
			t.Errorf("WIPLimit(%s) = %d,%v; want %d,%v", tc.mode, limit, ok, tc.limit, tc.ok)
		}
	}
}

func TestDailyCommitLimit(t *testing.T) {
	if limit, ok := DailyCommitLimit(store.ModeScrum); !ok || limit != 3 {
		t.Errorf("scrum commit limit = %d,%v; want 3,true", limit, ok)
	}
	for _, m := range []store.Mode{store.ModeKanban, store.ModeXP} {
		if _, ok := DailyCommitLimit(m); ok {
			t.Errorf("%s should have no commit limit", m)
		}
	}
}

func TestCanMoveToDoing(t *testing.T) {
	tests := []struct {
		name  string
		mode  store.Mode
		doing int
		want  bool
	}{
		{"scrum unlimited", store.ModeScrum, 10, true},
		{"kanban under limit", store.ModeKanban, 1, true},
		{"kanban at limit", store.ModeKanban, 2, false},
		{"kanban over limit", store.ModeKanban, 3, false},
		{"xp empty", store.ModeXP, 0, true},
		{"xp at limit", store.ModeXP, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanMoveToDoing(tasksWith(tc.doing, 0), tc.mode)
			if got != tc.want {
				t.Errorf("CanMoveToDoing = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestCanCommitMore(t *testing.T) {
	tests := []struct {
		name      string
		mode      store.Mode
		committed int
		want      bool
	}{
		{"scrum under cap", store.ModeScrum, 2, true},
		{"scrum at cap", store.ModeScrum, 3, false},
		{"kanban uncapped", store.ModeKanban, 10, true},
		{"xp uncapped", store.ModeXP, 10, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanCommitMore(tasksWith(0, tc.committed), tc.mode)
			if got != tc.want {
				t.Errorf("CanCommitMore = %v; want %v", got, tc.want)
			}
		})
	}
}
