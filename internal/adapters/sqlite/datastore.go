package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"enhancements/internal/ports"
)

const schemaVersion = "1"

// DataStore implements ports.DataStore as a single-row SQLite table, kept
// outside the vault so synced vaults do not carry it.
type DataStore struct {
	db        *sql.DB
	vaultPath string
	dbPath    string
}

// Ensure DataStore implements ports.DataStore
var _ ports.DataStore = (*DataStore)(nil)

// Open opens the store for vaultPath under $XDG_DATA_HOME/enhancements.
func Open(vaultPath string) (*DataStore, error) {
	return OpenAt(DatabasePath(vaultPath), vaultPath)
}

// OpenAt opens the store at dbPath, creating it if needed.
func OpenAt(dbPath, vaultPath string) (*DataStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS plugin_data (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			blob BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &DataStore{db: db, vaultPath: vaultPath, dbPath: dbPath}
	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return s, nil
}

// Path returns the database file location
func (s *DataStore) Path() string { return s.dbPath }

// Close closes the database connection
func (s *DataStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns nil if nothing was saved yet.
func (s *DataStore) Load() ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT blob FROM plugin_data WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return blob, nil
}

// Save replaces the stored blob.
func (s *DataStore) Save(data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(`
		INSERT INTO plugin_data (id, blob, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}

// DatabasePath returns $XDG_DATA_HOME/enhancements/<hash>.db for vaultPath.
func DatabasePath(vaultPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "enhancements", hashVaultPath(vaultPath)+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8])
}

func (s *DataStore) updateMeta() error {
	for key, value := range map[string]string{
		"schema_version":  schemaVersion,
		"vault_path_hash": hashVaultPath(s.vaultPath),
	} {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}
	return nil
}
