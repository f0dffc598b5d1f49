package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks settings after flags and environment are merged.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.VaultPath) == "" {
		return fmt.Errorf("vault path is required")
	}
	if s.ConfigDir == "" || filepath.IsAbs(s.ConfigDir) || strings.Contains(s.ConfigDir, "..") {
		return fmt.Errorf("config dir must be a folder name inside the vault, got %q", s.ConfigDir)
	}
	switch s.DataStore {
	case DataStoreJSON, DataStoreSQLite:
	default:
		return fmt.Errorf("unknown data store %q (expected %s or %s)", s.DataStore, DataStoreJSON, DataStoreSQLite)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	return nil
}
