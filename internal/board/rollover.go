package board

import (
	"errors"

	"github.com/sadopc/flowdeck/internal/store"
)

// ErrMoodRequired aborts a day rollover invoked without a mood.
var ErrMoodRequired = errors.New("mood required to end the day")

// Summary describes a completed rollover for display.
type Summary struct {
	DayKey  string
	Done    int
	Total   int
	Carried int
}

// EndDay closes the current day: the timer is frozen, the full board is
// archived under today's day key with the given mood, done tasks are
// dropped, and the rest carry forward as the next day's list.
//
// The archive is written before the live list is overwritten, so a
// crash mid-procedure leaves the closed day recoverable rather than
// silently lost.
func (b *Board) EndDay(mood store.Mood, timer *Timer) (Summary, error) {
	if mood == "" {
		return Summary{}, ErrMoodRequired
	}

	timer.Pause()
	timer.Reset()

	now := b.now()
	dayKey := store.DayKey(now)

	snapshot := make([]store.Task, len(b.tasks))
	copy(snapshot, b.tasks)

	log := store.DayLog{
		DayKey:     dayKey,
		Mood:       mood,
		Mode:       b.mode,
		Tasks:      snapshot,
		ArchivedAt: now,
	}
	if err := b.port.SaveDayLog(log); err != nil {
		return Summary{}, err
	}

	summary := Summary{DayKey: dayKey, Total: len(b.tasks)}

	var carried []store.Task
	for _, t := range b.tasks {
		if t.Status == store.StatusDone {
			summary.Done++
			continue
		}
		t.UpdatedAt = now
		t.RolledOver = true
		t.CarriedOverFromDay = dayKey
		t.CommittedToday = false
		carried = append(carried, t)
	}
	summary.Carried = len(carried)

	b.tasks = carried
	if err := b.persist(); err != nil {
		return Summary{}, err
	}

	timer.Sync()
	return summary, nil
}
