package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const SchemaVersion = 1

// DefaultRetention caps stored history at the most recent N conversations
const DefaultRetention = 50

// Store wraps the SQLite database holding conversation history and the
// user profile
type Store struct {
	conn      *sql.DB
	path      string
	retention int
}

// Open opens or creates the chatlens database at the given path.
// retention <= 0 selects DefaultRetention.
func Open(dbPath string, retention int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if retention <= 0 {
		retention = DefaultRetention
	}

	s := &Store{
		conn:      conn,
		path:      dbPath,
		retention: retention,
	}

	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	var currentVersion int
	err := s.conn.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)

	if err == sql.ErrNoRows || (err != nil && strings.Contains(err.Error(), "no such table: schema_version")) {
		if _, err := s.conn.Exec(schemaSQL); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}

	if currentVersion < SchemaVersion {
		return fmt.Errorf("schema migration needed from version %d to %d (not implemented)", currentVersion, SchemaVersion)
	}

	return nil
}

// DefaultDBPath returns the default database path
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./chatlens.db"
	}
	return filepath.Join(home, ".chatlens", "chatlens.db")
}

// Stats represents storage statistics
type Stats struct {
	ConversationCount    int64      `json:"conversation_count"`
	MessageCount         int64      `json:"message_count"`
	EarliestConversation *time.Time `json:"earliest_conversation,omitempty"`
	LatestConversation   *time.Time `json:"latest_conversation,omitempty"`
	DatabaseSize         int64      `json:"database_size"`
	Retention            int        `json:"retention"`
}

// Stats returns storage statistics
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{Retention: s.retention}

	err := s.conn.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&stats.ConversationCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count conversations: %w", err)
	}

	err = s.conn.QueryRow("SELECT COALESCE(SUM(message_count), 0) FROM conversations").Scan(&stats.MessageCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	// Aggregates lose the column's declared type, so the driver hands the
	// range back as text
	var earliest, latest sql.NullString
	err = s.conn.QueryRow(`
		SELECT MIN(created_at), MAX(created_at)
		FROM conversations
	`).Scan(&earliest, &latest)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}
	stats.EarliestConversation = parseStoredTime(earliest)
	stats.LatestConversation = parseStoredTime(latest)

	if info, err := os.Stat(s.path); err == nil {
		stats.DatabaseSize = info.Size()
	}

	return stats, nil
}

// Timestamp layouts go-sqlite3 writes, most precise first
var storedTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func parseStoredTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, v.String); err == nil {
			return &t
		}
	}
	return nil
}
