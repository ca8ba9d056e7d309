package store

import "time"

// Status is a task's column on the board. Transitions move one step
// along todo <-> doing <-> done.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Focus categorizes what part of life a task belongs to.
type Focus string

const (
	FocusWork     Focus = "work"
	FocusPersonal Focus = "personal"
	FocusLearning Focus = "learning"
)

// Mode selects the active workflow methodology.
type Mode string

const (
	ModeScrum  Mode = "scrum"
	ModeKanban Mode = "kanban"
	ModeXP     Mode = "xp"
)

// Mood annotates an archived day.
type Mood string

const (
	MoodGood Mood = "good"
	MoodMeh  Mood = "meh"
	MoodHard Mood = "hard"
)

// Phase is one interval of the focus-timer cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

type Task struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Status             Status    `json:"status"`
	Focus              Focus     `json:"focus"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	RolledOver         bool      `json:"rolled_over"`
	CarriedOverFromDay string    `json:"carried_over_from_day,omitempty"`
	CommittedToday     bool      `json:"committed_today"`
}

// DayLog is the immutable archive of one closed day. Tasks holds a
// snapshot of the board at archival time, not live references.
type DayLog struct {
	DayKey     string    `json:"day_key"`
	Mood       Mood      `json:"mood"`
	Mode       Mode      `json:"mode"`
	Tasks      []Task    `json:"tasks"`
	ArchivedAt time.Time `json:"archived_at"`
}

func (l DayLog) DoneCount() int {
	n := 0
	for _, t := range l.Tasks {
		if t.Status == StatusDone {
			n++
		}
	}
	return n
}

func (l DayLog) CommittedCount() int {
	n := 0
	for _, t := range l.Tasks {
		if t.CommittedToday {
			n++
		}
	}
	return n
}

func (l DayLog) CommittedDoneCount() int {
	n := 0
	for _, t := range l.Tasks {
		if t.CommittedToday && t.Status == StatusDone {
			n++
		}
	}
	return n
}

// PomodoroSession records one completed timer phase. TaskID is set only
// for work phases.
type PomodoroSession struct {
	ID        int64     `json:"id"`
	DayKey    string    `json:"day_key"`
	TaskID    string    `json:"task_id,omitempty"`
	Phase     Phase     `json:"phase"`
	Minutes   int       `json:"minutes"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// DayFocus is aggregated completed work-phase minutes for one day.
type DayFocus struct {
	DayKey  string
	Minutes int
}

// Settings is the single per-installation configuration record. Every
// field has a documented default; see DefaultSettings.
type Settings struct {
	Mode           Mode
	DarkMode       bool
	Premium        bool
	OnboardingSeen bool
	WorkMinutes    int
	BreakMinutes   int
}

func DefaultSettings() Settings {
	return Settings{
		Mode:         ModeScrum,
		WorkMinutes:  25,
		BreakMinutes: 5,
	}
}

// DayKey formats t as the YYYY-MM-DD bucket key, in local time. It is
// the join key between day logs, pomodoro sessions, and carried-over
// task references.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
