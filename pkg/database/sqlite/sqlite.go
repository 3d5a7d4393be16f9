package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	// Path is the database file, or ":memory:" for an in-process store.
	Path string
}

// NewSQLite opens (creating if necessary) the SQLite database at cfg.Path
// and verifies the connection. WAL and a busy timeout keep the file store
// well-behaved when a second process happens to hold it open.
func NewSQLite(cfg *Config) (*sqlx.DB, error) {
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single writer matches the catalog's single-threaded model and avoids
	// SQLITE_BUSY on overlapping connections from the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Foreign keys stay off: existing stores may carry orphan rows, which
	// the loader drops rather than rejects.
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return db, nil
}
