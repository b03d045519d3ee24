package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chatlensapp/chatlens/internal/analyze"
)

// Record is a stored conversation: the analysis plus a user-facing title
type Record struct {
	analyze.Conversation
	Title string `json:"title,omitempty"`
}

// SaveConversation persists a conversation and enforces the retention cap
// in the same transaction, so the store never holds more than the most
// recent N conversations. Save failures propagate to the caller; silent
// data loss is worse than a visible error.
func (s *Store) SaveConversation(conv *analyze.Conversation, title string) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	participants, err := json.Marshal(conv.Participants)
	if err != nil {
		return fmt.Errorf("failed to marshal participants: %w", err)
	}
	tone, err := json.Marshal(conv.Tone)
	if err != nil {
		return fmt.Errorf("failed to marshal tone: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO conversations (
			id, created_at, title, image_uri, extracted_text,
			message_count, messages, participants, tone, schema_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			extracted_text = excluded.extracted_text,
			message_count = excluded.message_count,
			messages = excluded.messages,
			participants = excluded.participants,
			tone = excluded.tone
	`, conv.ID, conv.Timestamp, title, conv.ImageURI, conv.ExtractedText,
		len(conv.Messages), messages, participants, tone, analyze.SchemaVersion)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	// Retention: keep only the most recent N
	_, err = tx.Exec(`
		DELETE FROM conversations WHERE id NOT IN (
			SELECT id FROM conversations
			ORDER BY created_at DESC, id
			LIMIT ?
		)
	`, s.retention)
	if err != nil {
		return fmt.Errorf("failed to enforce retention: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit conversation: %w", err)
	}

	return nil
}

// GetConversation retrieves a conversation by ID. A missing ID returns
// (nil, nil), not an error.
func (s *Store) GetConversation(id string) (*Record, error) {
	rec := &Record{}
	var messages, participants, tone string
	var schemaVersion string

	err := s.conn.QueryRow(`
		SELECT id, created_at, title, image_uri, extracted_text,
		       messages, participants, tone, schema_version
		FROM conversations
		WHERE id = ?
	`, id).Scan(
		&rec.ID, &rec.Timestamp, &rec.Title, &rec.ImageURI, &rec.ExtractedText,
		&messages, &participants, &tone, &schemaVersion,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	if err := json.Unmarshal([]byte(messages), &rec.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if err := json.Unmarshal([]byte(participants), &rec.Participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}
	if err := json.Unmarshal([]byte(tone), &rec.Tone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tone: %w", err)
	}

	return rec, nil
}

// ListOptions filters conversation listings
type ListOptions struct {
	Since *time.Time
	Limit int
}

// ListConversations returns stored conversations, newest first
func (s *Store) ListConversations(opts ListOptions) ([]*Record, error) {
	query := `
		SELECT id, created_at, title, image_uri, extracted_text,
		       messages, participants, tone, schema_version
		FROM conversations
		WHERE 1=1
	`
	args := []interface{}{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY created_at DESC, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		var messages, participants, tone, schemaVersion string

		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Title, &rec.ImageURI, &rec.ExtractedText,
			&messages, &participants, &tone, &schemaVersion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}

		if err := json.Unmarshal([]byte(messages), &rec.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
		}
		if err := json.Unmarshal([]byte(participants), &rec.Participants); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
		}
		if err := json.Unmarshal([]byte(tone), &rec.Tone); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tone: %w", err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return records, nil
}

// DeleteConversations removes the given conversations. Unknown IDs are
// not an error; the returned count says how many rows actually went away.
func (s *Store) DeleteConversations(ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var deleted int64
	for _, id := range ids {
		res, err := tx.Exec("DELETE FROM conversations WHERE id = ?", id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete conversation %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count deleted rows: %w", err)
		}
		deleted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	return deleted, nil
}

// ExportJSON writes all stored conversations to a JSON file. The write is
// atomic: a temp file is renamed into place.
func (s *Store) ExportJSON(path string) error {
	records, err := s.ListConversations(ListOptions{})
	if err != nil {
		return err
	}

	export := map[string]interface{}{
		"exported_at":    time.Now(),
		"schema_version": analyze.SchemaVersion,
		"conversations":  records,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename export file: %w", err)
	}

	return nil
}
