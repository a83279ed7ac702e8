package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetSetting reads a settings value; the boolean reports whether the key exists.
func (s *StoreImpl) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to read setting '%s': %w", key, err)
	}

	return value, true, nil
}

// SetSetting upserts a settings value.
func (s *StoreImpl) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting '%s': %w", key, err)
	}

	return nil
}
