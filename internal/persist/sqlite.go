package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists the snapshot in a single-row table. Alternative backend
// for setups that already carry sqlite tooling.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at the given path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name        TEXT PRIMARY KEY,
		data        BLOB NOT NULL,
		updated_at  DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Load implements Adapter.
func (s *SQLite) Load() ([]byte, error) {
	row := s.db.QueryRow(`SELECT data FROM snapshots WHERE name = ?`, EntryName)
	var data []byte
	err := row.Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return data, nil
}

// Save implements Adapter.
func (s *SQLite) Save(data []byte) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO snapshots (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		EntryName, data, now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Delete implements Adapter.
func (s *SQLite) Delete() error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, EntryName)
	return err
}

// Close implements Adapter.
func (s *SQLite) Close() error {
	return s.db.Close()
}
