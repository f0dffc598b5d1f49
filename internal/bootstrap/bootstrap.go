// Package bootstrap wires the adapters into a loaded plugin for the
// command-line, terminal UI and MCP front ends.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"enhancements/internal/adapters/actions"
	"enhancements/internal/adapters/filesystem"
	"enhancements/internal/adapters/lua"
	"enhancements/internal/adapters/markdown"
	"enhancements/internal/adapters/sqlite"
	"enhancements/internal/application"
	"enhancements/internal/config"
	"enhancements/internal/ports"
)

// Session is a loaded plugin plus the resources it holds open.
type Session struct {
	Plugin   *application.Plugin
	Host     *filesystem.Host
	Scanner  ports.NoteScanner
	Settings config.Settings

	closers []func() error
}

// PluginDir returns <vault>/<configDir>/plugins/enhancements.
func PluginDir(vaultPath, configDir string) string {
	return filepath.Join(vaultPath, configDir, "plugins", application.PluginID)
}

// VaultPath returns the absolute vault root the session runs against.
func (s *Session) VaultPath() string {
	return s.Host.Vault().Adapter().(ports.FileSystemAdapter).BasePath()
}

// PluginDir returns the session's plugin folder.
func (s *Session) PluginDir() string {
	return PluginDir(s.VaultPath(), s.Settings.ConfigDir)
}

// Open validates settings and loads the plugin. A nil statusBar gets a new one.
func Open(ctx context.Context, settings config.Settings, statusBar *filesystem.StatusBar) (*Session, error) {
	settings.VaultPath = config.ExpandHome(settings.VaultPath)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	host, err := filesystem.OpenHost(settings.VaultPath, settings.ConfigDir, statusBar)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Host:     host,
		Scanner:  markdown.NewScanner(),
		Settings: settings,
	}

	store, err := s.openStore()
	if err != nil {
		return nil, err
	}

	modules := lua.NewLoader()
	s.closers = append(s.closers, func() error { modules.Close(); return nil })

	plugin, err := application.Load(ctx, host, store, application.LoadOptions{
		Builtins: actions.Factories(settings.EnableScripts),
		Modules:  modules,
		Config:   config.NewLoader(),
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Plugin = plugin
	return s, nil
}

func (s *Session) openStore() (ports.DataStore, error) {
	switch s.Settings.DataStore {
	case config.DataStoreSQLite:
		store, err := sqlite.Open(s.VaultPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite data store: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		return store, nil
	default:
		return filesystem.NewJSONDataStore(filepath.Join(s.PluginDir(), filesystem.DataFileName)), nil
	}
}

// Close releases module interpreters and the data store.
func (s *Session) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
