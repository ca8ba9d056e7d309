package store

import (
	"fmt"
	"time"
)

// LoadActiveTasks returns the live task list in board order.
func (s *Store) LoadActiveTasks() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, status, focus, created_at, updated_at, rolled_over, carried_over_from_day, committed_today
		 FROM active_tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load active tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var createdAt, updatedAt string
		var rolledOver, committed int
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.Focus, &createdAt, &updatedAt,
			&rolledOver, &t.CarriedOverFromDay, &committed); err != nil {
			return nil, err
		}
		t.RolledOver = rolledOver == 1
		t.CommittedToday = committed == 1
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveActiveTasks replaces the stored task list with tasks, atomically.
// The board persists the full list after every mutation rather than
// diffing individual rows.
func (s *Store) SaveActiveTasks(tasks []Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM active_tasks`); err != nil {
		return fmt.Errorf("clear active tasks: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO active_tasks (id, title, status, focus, created_at, updated_at, rolled_over, carried_over_from_day, committed_today, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert task: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		_, err := stmt.Exec(
			t.ID, t.Title, string(t.Status), string(t.Focus),
			t.CreatedAt.UTC().Format(time.RFC3339), t.UpdatedAt.UTC().Format(time.RFC3339),
			boolToInt(t.RolledOver), t.CarriedOverFromDay, boolToInt(t.CommittedToday), i,
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
