package store

import (
	"fmt"
	"strconv"
)

const (
	SettingDefaultHours = "default_hours"
	SettingExportDir    = "export_dir"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// DefaultHours is the hours value prefilled in the add form. Missing or
// unparsable values fall back to "1.0".
func (s *Store) DefaultHours() string {
	v, err := s.GetSetting(SettingDefaultHours)
	if err != nil {
		return "1.0"
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return "1.0"
	}
	return v
}

// ExportDir returns the configured export directory, or fallback when the
// setting is blank.
func (s *Store) ExportDir(fallback string) string {
	v, err := s.GetSetting(SettingExportDir)
	if err != nil || v == "" {
		return fallback
	}
	return v
}
