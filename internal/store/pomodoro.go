package store

import (
	"fmt"
	"time"
)

// AppendPomodoroSession records one completed timer phase. Sessions are
// append-only; the core never edits or deletes them.
func (s *Store) AppendPomodoroSession(p PomodoroSession) error {
	_, err := s.db.Exec(
		`INSERT INTO pomodoro_sessions (day_key, task_id, phase, minutes, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.DayKey, p.TaskID, string(p.Phase), p.Minutes,
		p.StartedAt.UTC().Format(time.RFC3339), p.EndedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append pomodoro session: %w", err)
	}
	return nil
}

// LoadPomodoroSessions returns the sessions logged for dayKey in append
// order.
func (s *Store) LoadPomodoroSessions(dayKey string) ([]PomodoroSession, error) {
	rows, err := s.db.Query(
		`SELECT id, day_key, task_id, phase, minutes, started_at, ended_at
		 FROM pomodoro_sessions WHERE day_key = ? ORDER BY id`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("load pomodoro sessions: %w", err)
	}
	defer rows.Close()

	var sessions []PomodoroSession
	for rows.Next() {
		var p PomodoroSession
		var startedAt, endedAt string
		if err := rows.Scan(&p.ID, &p.DayKey, &p.TaskID, &p.Phase, &p.Minutes, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		p.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		p.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		sessions = append(sessions, p)
	}
	return sessions, rows.Err()
}

// FocusMinutesByDay aggregates completed work-phase minutes per day for
// dayKeys in [fromKey, toKey]. Day keys sort lexicographically in date
// order, so the range comparison is plain string comparison.
func (s *Store) FocusMinutesByDay(fromKey, toKey string) ([]DayFocus, error) {
	rows, err := s.db.Query(
		`SELECT day_key, COALESCE(SUM(minutes), 0)
		 FROM pomodoro_sessions
		 WHERE phase = 'work' AND day_key >= ? AND day_key <= ?
		 GROUP BY day_key ORDER BY day_key`, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("focus minutes: %w", err)
	}
	defer rows.Close()

	var days []DayFocus
	for rows.Next() {
		var d DayFocus
		if err := rows.Scan(&d.DayKey, &d.Minutes); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
