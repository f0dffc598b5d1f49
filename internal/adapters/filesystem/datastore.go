package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"enhancements/internal/ports"
)

// DataFileName is the persisted data file inside the plugin folder
const DataFileName = "data.json"

// JSONDataStore persists the data blob as a JSON file
type JSONDataStore struct {
	path string
}

var _ ports.DataStore = (*JSONDataStore)(nil)

// NewJSONDataStore stores the blob at path
func NewJSONDataStore(path string) *JSONDataStore {
	return &JSONDataStore{path: path}
}

// Path returns the data file location
func (s *JSONDataStore) Path() string { return s.path }

// Load returns nil when the file does not exist yet
func (s *JSONDataStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return data, nil
}

// Save replaces the file atomically, creating the plugin folder if needed.
func (s *JSONDataStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return WriteFileAtomic(s.path, data, 0644)
}

// WriteFileAtomic writes content to a temp file in the same directory and
// renames it over path, so readers never see a partial file.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	cleanup = false
	return nil
}
