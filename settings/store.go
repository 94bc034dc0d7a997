package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the single settings record.
type Store interface {
	// Load returns ErrNotFound when nothing has been saved.
	Load(ctx context.Context) (*UserSettings, error)

	// Save validates and persists s.
	Save(ctx context.Context, s UserSettings) error

	// Reset deletes all user data owned by the store.
	Reset(ctx context.Context) error
}

const (
	settingsFile    = "user-settings.json"
	preferencesFile = "preferences.json"
)

// FileStore keeps user-settings.json in a data directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (fs *FileStore) Path() string { return filepath.Join(fs.Dir, settingsFile) }

func (fs *FileStore) Load(ctx context.Context) (*UserSettings, error) {
	data, err := os.ReadFile(fs.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes through a temp file and rename so a concurrent reader never
// sees a half-written document.
func (fs *FileStore) Save(ctx context.Context, s UserSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return WriteFileAtomic(fs.Path(), data)
}

func (fs *FileStore) Reset(ctx context.Context) error {
	for _, name := range []string{settingsFile, preferencesFile} {
		err := os.Remove(filepath.Join(fs.Dir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// WriteFileAtomic writes data to path via path+".tmp" and a rename.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
