// Package storage opens the local SQLite database shared by the history and
// account stores.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/doeshing/baseconv/internal/domain"
)

// DatabaseFile is the database name inside the data directory.
const DatabaseFile = "baseconv.db"

const schema = `
CREATE TABLE IF NOT EXISTS users (
  username      TEXT PRIMARY KEY,
  password_hash TEXT NOT NULL,
  email         TEXT NOT NULL DEFAULT '',
  first_name    TEXT NOT NULL DEFAULT '',
  created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS conversions (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  username      TEXT NOT NULL,
  input_value   TEXT NOT NULL,
  input_base    INTEGER NOT NULL,
  output_value  TEXT NOT NULL,
  output_base   INTEGER NOT NULL,
  created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_user ON conversions(username, created_at);
`

// TimeLayout is a fixed-width UTC layout, so stored timestamps sort
// lexically in time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}
