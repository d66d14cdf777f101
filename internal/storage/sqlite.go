// Package storage keeps console history in SQLite through the pure-Go
// modernc.org/sqlite driver. Each console writes under its own session
// name, so one database serves the local console and every SSH user.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// LocalSession is the session name used by the local console.
const LocalSession = "local"

// Store manages the SQLite database connection for history persistence.
type Store struct {
	db *sql.DB
}

// HistoryEntry is one submitted console command.
type HistoryEntry struct {
	ID        int64
	Session   string
	Command   string
	CreatedAt time.Time
}

// SessionStats summarises the history of one session.
type SessionStats struct {
	Session   string
	Commands  int
	LastUsed  time.Time
	FirstUsed time.Time
}

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// schema is applied in order; user_version records how many steps ran.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		command TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_session ON history(session, id)`,
}

// Open opens the history database at dbPath, creating it and its
// directory when missing. A leading ~ is the user's home directory.
func Open(dbPath string) (*Store, error) {
	dsn, err := prepare(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions append concurrently; one connection serializes them
	// and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

// prepare resolves dbPath into a driver DSN.
func prepare(dbPath string) (string, error) {
	if dbPath == MemoryPath {
		return dbPath, nil
	}
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)", nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(schema); i++ {
		if _, err := s.db.Exec(schema[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	if version < len(schema) {
		// PRAGMA does not take bind parameters.
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(schema))); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendHistory records a submitted command for the given session.
// Returns the ID of the inserted record.
func (s *Store) AppendHistory(session, command string) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO history (session, command) VALUES (?, ?)",
		session, command,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot append history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LoadHistory returns the latest limit commands of a session, oldest first.
// A non-positive limit loads everything.
func (s *Store) LoadHistory(session string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT id, session, command, created_at FROM (
			SELECT id, session, command, created_at
			FROM history
			WHERE session = ?
			ORDER BY id DESC
			LIMIT ?
		 ) ORDER BY id ASC`,
		session, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// RecentHistory returns the latest limit commands across all sessions, newest first.
func (s *Store) RecentHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, session, command, created_at
		 FROM history
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

// CountHistory returns the number of commands stored for a session.
func (s *Store) CountHistory(session string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM history WHERE session = ?", session).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count history: %w", err)
	}
	return n, nil
}

// ClearHistory deletes every command of a session.
func (s *Store) ClearHistory(session string) error {
	_, err := s.db.Exec("DELETE FROM history WHERE session = ?", session)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// Stats retrieves per-session statistics for every session with history.
func (s *Store) Stats() ([]SessionStats, error) {
	rows, err := s.db.Query(
		`SELECT session, COUNT(*), MIN(created_at), MAX(created_at)
		 FROM history
		 GROUP BY session
		 ORDER BY session`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get history stats: %w", err)
	}
	defer rows.Close()

	var stats []SessionStats
	for rows.Next() {
		var st SessionStats
		var first, last any
		if err := rows.Scan(&st.Session, &st.Commands, &first, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.FirstUsed = parseTime(first)
		st.LastUsed = parseTime(last)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanHistory(rows *sql.Rows) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Session, &e.Command, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
