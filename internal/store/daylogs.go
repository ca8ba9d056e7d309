package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SaveDayLog writes the archive for a day. Archiving the same day twice
// replaces the earlier record (last write wins).
func (s *Store) SaveDayLog(l DayLog) error {
	snapshot, err := json.Marshal(l.Tasks)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO day_logs (day_key, mood, mode, snapshot, archived_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(day_key) DO UPDATE SET mood = excluded.mood, mode = excluded.mode,
		   snapshot = excluded.snapshot, archived_at = excluded.archived_at`,
		l.DayKey, string(l.Mood), string(l.Mode), string(snapshot),
		l.ArchivedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save day log %s: %w", l.DayKey, err)
	}
	return nil
}

// LoadDayLog returns the archive for dayKey, or ErrNotFound if the day
// was never closed.
func (s *Store) LoadDayLog(dayKey string) (*DayLog, error) {
	l := &DayLog{}
	var snapshot, archivedAt string
	err := s.db.QueryRow(
		`SELECT day_key, mood, mode, snapshot, archived_at FROM day_logs WHERE day_key = ?`, dayKey,
	).Scan(&l.DayKey, &l.Mood, &l.Mode, &snapshot, &archivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("day log %s: %w", dayKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load day log %s: %w", dayKey, err)
	}
	if err := json.Unmarshal([]byte(snapshot), &l.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", dayKey, err)
	}
	l.ArchivedAt, _ = time.Parse(time.RFC3339, archivedAt)
	return l, nil
}

// LoadAllDayLogs returns every archive, newest day first.
func (s *Store) LoadAllDayLogs() ([]DayLog, error) {
	rows, err := s.db.Query(
		`SELECT day_key, mood, mode, snapshot, archived_at FROM day_logs ORDER BY day_key DESC`)
	if err != nil {
		return nil, fmt.Errorf("load day logs: %w", err)
	}
	defer rows.Close()

	var logs []DayLog
	for rows.Next() {
		var l DayLog
		var snapshot, archivedAt string
		if err := rows.Scan(&l.DayKey, &l.Mood, &l.Mode, &snapshot, &archivedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(snapshot), &l.Tasks); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %s: %w", l.DayKey, err)
		}
		l.ArchivedAt, _ = time.Parse(time.RFC3339, archivedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
