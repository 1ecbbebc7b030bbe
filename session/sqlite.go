package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStorage keeps records in a local state database — for installs that
// prefer one state file over loose JSON files. Same single-record contract
// as FileStorage.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLiteStorage opens (creating if needed) the state database at path
// and ensures the records table exists. Use ":memory:" for an ephemeral
// store in tests.
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session storage: opening %s: %w", path, err)
	}
	// A state DB serves one process; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		name  TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session storage: creating records table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStorage) Close() error { return s.db.Close() }

func (s *SQLiteStorage) Load(name string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM records WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session storage: reading %s: %w", name, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) Save(name string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO records (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("session storage: writing %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(name string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE name = ?`, name); err != nil {
		return fmt.Errorf("session storage: removing %s: %w", name, err)
	}
	return nil
}
