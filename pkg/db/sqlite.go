// pkg/db/sqlite.go
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver, registered as "sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// NewSQLiteDB opens (creating if needed) the SQLite database at path.
func NewSQLiteDB(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	return db, nil
}
