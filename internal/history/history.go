// Package history persists REPL sessions and their evaluated entries.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Session represents one REPL session
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// Entry represents one evaluated REPL input
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	IsError   bool      `json:"is_error"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the interface for REPL history persistence
type Store interface {
	// BeginSession records the start of a REPL session
	BeginSession(ctx context.Context, session *Session) error

	// Append records one evaluated input
	Append(ctx context.Context, entry *Entry) error

	// Recent returns the last N entries across sessions in
	// chronological order
	Recent(ctx context.Context, limit int) ([]*Entry, error)

	// Statistics returns store statistics
	Statistics(ctx context.Context) (map[string]interface{}, error)

	// Close releases store resources
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// DefaultPath returns the default history database location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./ockham_history.db"
	}
	return filepath.Join(home, ".ockham", "history.db")
}

// Open opens (and if needed creates) a history database at path
func Open(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Sessions table
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Entries table
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		input TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT '',
		is_error INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	-- Indices
	CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// BeginSession records the start of a REPL session
func (s *SQLiteStore) BeginSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at) VALUES (?, ?)
	`, session.ID, session.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	return nil
}

// Append records one evaluated input
func (s *SQLiteStore) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (session_id, input, result, is_error, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.SessionID, entry.Input, entry.Result, entry.IsError, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

// Recent returns the last N entries across sessions in chronological order
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, input, result, is_error, created_at
		FROM entries
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Input, &entry.Result, &entry.IsError, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	// Reverse the DESC order so callers see oldest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}

// Statistics returns store statistics
func (s *SQLiteStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	var totalSessions int64
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&totalSessions)
	stats["total_sessions"] = totalSessions

	var totalEntries int64
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&totalEntries)
	stats["total_entries"] = totalEntries

	var totalErrors int64
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE is_error = 1`).Scan(&totalErrors)
	stats["total_errors"] = totalErrors

	return stats, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory implementation used by tests and by the
// REPL when history persistence is disabled
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	entries  []*Entry
	nextID   int64
}

// NewMemoryStore creates a new in-memory history store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		nextID:   1,
	}
}

// BeginSession records the start of a REPL session
func (s *MemoryStore) BeginSession(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	s.sessions[session.ID] = session
	return nil
}

// Append records one evaluated input
func (s *MemoryStore) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.SessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns the last N entries in chronological order
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	recent := make([]*Entry, limit)
	copy(recent, s.entries[len(s.entries)-limit:])
	return recent, nil
}

// Statistics returns store statistics
func (s *MemoryStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totalErrors int64
	for _, entry := range s.entries {
		if entry.IsError {
			totalErrors++
		}
	}

	return map[string]interface{}{
		"total_sessions": int64(len(s.sessions)),
		"total_entries":  int64(len(s.entries)),
		"total_errors":   totalErrors,
	}, nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}
