package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultVaultPath = "~/Documents/vault"
	DefaultConfigDir = ".obsidian"
	DefaultDataStore = DataStoreJSON
	DefaultLogLevel  = "info"
)

// Data store backends.
const (
	DataStoreJSON   = "json"
	DataStoreSQLite = "sqlite"
)

// Environment variables read by FromEnv.
const (
	EnvVault         = "ENHANCEMENTS_VAULT"
	EnvConfigDir     = "ENHANCEMENTS_CONFIG_DIR"
	EnvDataStore     = "ENHANCEMENTS_DATA_STORE"
	EnvEnableScripts = "ENHANCEMENTS_ENABLE_SCRIPTS"
	EnvLogLevel      = "ENHANCEMENTS_LOG_LEVEL"
)

// Settings holds runtime settings. Defaults come from Default(), the
// environment overrides them and command-line flags override both.
type Settings struct {
	VaultPath     string
	ConfigDir     string
	DataStore     string
	EnableScripts bool // Registers the script action; off by default
	LogLevel      string
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		VaultPath: DefaultVaultPath,
		ConfigDir: DefaultConfigDir,
		DataStore: DefaultDataStore,
		LogLevel:  DefaultLogLevel,
	}
}

// FromEnv returns the defaults overridden by ENHANCEMENTS_* variables.
func FromEnv() Settings {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Settings {
	s := Default()
	if v, ok := lookup(EnvVault); ok && v != "" {
		s.VaultPath = v
	}
	if v, ok := lookup(EnvConfigDir); ok && v != "" {
		s.ConfigDir = v
	}
	if v, ok := lookup(EnvDataStore); ok && v != "" {
		s.DataStore = strings.ToLower(v)
	}
	if v, ok := lookup(EnvEnableScripts); ok {
		s.EnableScripts, _ = strconv.ParseBool(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	return s
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
