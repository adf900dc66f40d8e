package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skillscape/local-app/pkg/log"
)

// Store is the persistence contract the data managers program against: whole
// values saved and loaded by string key. Implementations never interpret the
// values; the managers decide what lives under each key.
type Store interface {
	// Load decodes the value stored under key into out. It reports whether the
	// key existed; when it did not, out is left untouched so the caller can
	// keep its default.
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
	Delete(key string) error
}

// SQLiteStore implements Store on top of the catalogue key/value table.
type SQLiteStore struct {
	db     Database
	logger *log.Logger
}

// NewSQLiteStore creates a new SQLiteStore instance.
func NewSQLiteStore(db Database, logger *log.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

// Load reads and decodes the value stored under key.
func (s *SQLiteStore) Load(key string, out any) (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM catalogue WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return true, nil
}

// Save encodes value and writes it under key, replacing any previous value.
func (s *SQLiteStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.db.Rollback()

	_, err = s.db.Exec("INSERT OR REPLACE INTO catalogue (key, value, updated) VALUES (?, ?, ?)",
		key, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}

	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not an
// error.
func (s *SQLiteStore) Delete(key string) error {
	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.db.Rollback()

	if _, err := s.db.Exec("DELETE FROM catalogue WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}

	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
