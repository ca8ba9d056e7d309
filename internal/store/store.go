package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// ErrNotFound is returned when a lookup targets a record that does not
// exist, e.g. a day with no archive.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS active_tasks (
		id                    TEXT PRIMARY KEY,
		title                 TEXT NOT NULL,
		status                TEXT NOT NULL DEFAULT 'todo',
		focus                 TEXT NOT NULL DEFAULT 'work',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL,
		rolled_over           INTEGER NOT NULL DEFAULT 0,
		carried_over_from_day TEXT NOT NULL DEFAULT '',
		committed_today       INTEGER NOT NULL DEFAULT 0,
		position              INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_logs (
		day_key     TEXT PRIMARY KEY,
		mood        TEXT NOT NULL,
		mode        TEXT NOT NULL,
		snapshot    TEXT NOT NULL DEFAULT '[]',
		archived_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		day_key    TEXT NOT NULL,
		task_id    TEXT NOT NULL DEFAULT '',
		phase      TEXT NOT NULL,
		minutes    INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_day ON pomodoro_sessions(day_key);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('mode',            'scrum'),
		('dark_mode',       '0'),
		('premium',         '0'),
		('onboarding_seen', '0'),
		('work_minutes',    '25'),
		('break_minutes',   '5');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/flowdeck/flowdeck.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "flowdeck", "flowdeck.db"), nil
}
