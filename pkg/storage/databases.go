// Package storage provides functionality for persisting and retrieving Skillscape data.
// This file handles the general SQL database interfaces and schema.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"skillscape/local-app/pkg/log"
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
	// PostgreSQL DBDriver = "postgres" // Uncomment when adding PostgreSQL support
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Begin() error
	Commit() error
	Rollback() error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	InitSchema() error
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	// case PostgreSQL:
	//     return &PostgreSQLDatabase{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// BaseDatabase provides a base implementation of some Database methods
type BaseDatabase struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *log.Logger
}

// Begin starts a new transaction
func (b *BaseDatabase) Begin() error {
	tx, err := b.db.Begin()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to begin transaction", log.Fields{"error": err})
		return err
	}
	b.tx = tx
	b.logger.Debug(context.Background(), "Transaction started", nil)
	return nil
}

// Commit commits the current transaction
func (b *BaseDatabase) Commit() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to commit", nil)
		return fmt.Errorf("no active transaction")
	}
	err := b.tx.Commit()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to commit transaction", log.Fields{"error": err})
		return err
	}
	b.tx = nil
	b.logger.Debug(context.Background(), "Transaction committed", nil)
	return nil
}

// Rollback rolls back the current transaction
func (b *BaseDatabase) Rollback() error {
	if b.tx == nil {
		return fmt.Errorf("no active transaction")
	}
	err := b.tx.Rollback()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to rollback transaction", log.Fields{"error": err})
		return err
	}
	b.tx = nil
	b.logger.Debug(context.Background(), "Transaction rolled back", nil)
	return nil
}

// Exec executes a query without returning any rows
func (b *BaseDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	b.logger.Debug(context.Background(), "Executing query", log.Fields{"query": query, "args": args})
	if b.tx != nil {
		return b.tx.Exec(query, args...)
	}
	return b.db.Exec(query, args...)
}

// Query executes a query that returns rows
func (b *BaseDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	b.logger.Debug(context.Background(), "Querying", log.Fields{"query": query, "args": args})
	return b.db.Query(query, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (b *BaseDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return b.db.QueryRow(query, args...)
}

// InitSchema initializes the database schema. The catalogue table is a plain
// key/value store: the data managers save and load whole JSON-encoded arrays
// by key and never query inside the values.
func (b *BaseDatabase) InitSchema() error {
	b.logger.Info(context.Background(), "Initializing database schema", nil)

	_, err := b.Exec(`
		CREATE TABLE IF NOT EXISTS catalogue (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated DATETIME NOT NULL
		);
	`)
	if err != nil {
		b.logger.Error(context.Background(), "Failed to create tables", log.Fields{"error": err})
		return fmt.Errorf("failed to create tables: %w", err)
	}
	b.logger.Info(context.Background(), "Database schema initialized successfully", nil)
	return nil
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	// case PostgreSQL:
	//     return PostgreSQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
