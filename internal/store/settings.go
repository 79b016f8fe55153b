package store

import (
	"context"
	"database/sql"
	"strconv"
)

const automationKey = "automation_enabled"

func (s *Store) GetAutomationEnabled(ctx context.Context) (bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, automationKey).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	enabled, _ := strconv.ParseBool(value)
	return enabled, nil
}

func (s *Store) SetAutomationEnabled(ctx context.Context, enabled bool) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, automationKey, strconv.FormatBool(enabled))
	return err
}
