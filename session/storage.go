package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage is a named-record store for the gateway's durable client state.
// The session package keeps exactly one record (RecordName) in it.
type Storage interface {
	// Load returns the record's contents and whether it exists.
	Load(name string) ([]byte, bool, error)
	// Save writes the record, replacing any previous contents.
	Save(name string, data []byte) error
	// Clear removes the record. Clearing an absent record is not an error.
	Clear(name string) error
}

// FileStorage keeps each record as one JSON file inside a directory.
// This is the default backend — the Go counterpart of a browser's
// localStorage entry.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed and returns a store over it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session storage: creating %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fsys *FileStorage) path(name string) string {
	return filepath.Join(fsys.dir, name+".json")
}

func (fsys *FileStorage) Load(name string) ([]byte, bool, error) {
	raw, err := os.ReadFile(fsys.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session storage: reading %s: %w", name, err)
	}
	return raw, true, nil
}

// Save writes atomically via a temp file so a crash mid-write can never
// leave a truncated record behind.
func (fsys *FileStorage) Save(name string, data []byte) error {
	tmp := fsys.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session storage: writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, fsys.path(name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("session storage: committing %s: %w", name, err)
	}
	return nil
}

func (fsys *FileStorage) Clear(name string) error {
	err := os.Remove(fsys.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session storage: removing %s: %w", name, err)
	}
	return nil
}
