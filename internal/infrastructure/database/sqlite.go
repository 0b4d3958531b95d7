package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"fileshare/internal/infrastructure/database/migrations"
)

// DB holds the database connection
type DB struct {
	*sql.DB
}

// New opens the session database. path can be a file path or ":memory:".
// The pool is pinned to a single connection: an in-memory SQLite database
// lives only as long as the connection that created it.
func New(path string) (*DB, error) {
	if !isMemory(path) {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate runs all pending schema migrations
func (db *DB) Migrate() error {
	return migrations.MigrateUp(db.DB)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
