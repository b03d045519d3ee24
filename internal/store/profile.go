package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Profile rows are string-keyed JSON blobs holding user preferences
// (display name, default reply tone, and so on). Reads of a missing key
// return ("", false, nil); writes propagate errors.

// SetProfile stores a profile value under key
func (s *Store) SetProfile(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO profile (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save profile key %q: %w", key, err)
	}
	return nil
}

// GetProfile retrieves a profile value. The second return reports whether
// the key exists.
func (s *Store) GetProfile(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM profile WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get profile key %q: %w", key, err)
	}
	return value, true, nil
}

// RemoveProfile deletes a profile key; deleting a missing key is a no-op
func (s *Store) RemoveProfile(key string) error {
	if _, err := s.conn.Exec("DELETE FROM profile WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove profile key %q: %w", key, err)
	}
	return nil
}
