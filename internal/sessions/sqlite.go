package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roastify/roastify/internal/shared"
)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// SQLiteStore is a [Store] implementation backed by a SQLite database, so
// sessions survive process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a session store on the given database connection and
// ensures the sessions table exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLiteStore opens (or creates) a SQLite database at path and returns a
// session store on it.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time.
	shared.ConfigureDatabase(db, 1, 1)
	return NewSQLiteStore(db)
}

// Get retrieves the token record for a session, or (nil, nil) if none exists.
func (s *SQLiteStore) Get(sessionID string) (*TokenRecord, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}

	var payload string
	err := s.db.QueryRow(`SELECT token FROM sessions WHERE id = ?`, sessionID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	var rec TokenRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session token: %w", err)
	}

	return &rec, nil
}

// Set creates or replaces the token record for a session.
func (s *SQLiteStore) Set(sessionID string, record *TokenRecord) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}
	if record == nil {
		return fmt.Errorf("%w: record is required", shared.ErrInvalidArgument)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session token: %w", err)
	}

	query := `
		INSERT INTO sessions (id, token, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, sessionID, string(payload), time.Now()); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	return nil
}

// Delete removes the token record for a session, if present.
func (s *SQLiteStore) Delete(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is required", shared.ErrInvalidArgument)
	}

	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
