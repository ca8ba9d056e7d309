package store

import (
	"fmt"
	"strconv"
)

// Settings are stored as independent named fields of one settings
// record. Each setter writes only its own key, so sibling fields are
// never clobbered. A missing or malformed value falls back to the
// documented default on load.

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// LoadSettings materializes the typed settings record, applying
// defaults for anything missing or unparseable.
func (s *Store) LoadSettings() (Settings, error) {
	cfg := DefaultSettings()

	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return cfg, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return cfg, err
		}
		switch key {
		case "mode":
			switch Mode(value) {
			case ModeScrum, ModeKanban, ModeXP:
				cfg.Mode = Mode(value)
			}
		case "dark_mode":
			cfg.DarkMode = value == "1"
		case "premium":
			cfg.Premium = value == "1"
		case "onboarding_seen":
			cfg.OnboardingSeen = value == "1"
		case "work_minutes":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.WorkMinutes = n
			}
		case "break_minutes":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.BreakMinutes = n
			}
		}
	}
	return cfg, rows.Err()
}

func (s *Store) SetMode(m Mode) error {
	return s.setSetting("mode", string(m))
}

func (s *Store) SetDarkMode(on bool) error {
	return s.setSetting("dark_mode", boolSetting(on))
}

func (s *Store) SetPremium(on bool) error {
	return s.setSetting("premium", boolSetting(on))
}

func (s *Store) SetOnboardingSeen(on bool) error {
	return s.setSetting("onboarding_seen", boolSetting(on))
}

func (s *Store) SetWorkMinutes(n int) error {
	return s.setSetting("work_minutes", strconv.Itoa(n))
}

func (s *Store) SetBreakMinutes(n int) error {
	return s.setSetting("break_minutes", strconv.Itoa(n))
}

func boolSetting(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
