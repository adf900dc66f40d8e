package storage

import (
	"fmt"
	"path/filepath"

	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/model"
)

// Storage bundles the key/value Store with the database backing it.
type Storage struct {
	Store  Store
	db     Database
	logger *log.Logger
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(cfg *model.Config, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(cfg.DatabaseType)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", cfg.DatabaseType, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	// Construct the full path for the database file
	dataSourceName := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)

	// Open the database connection
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	// Create the key/value table if needed
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Storage{
		Store:  NewSQLiteStore(db, logger),
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}
