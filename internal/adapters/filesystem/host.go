package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"enhancements/internal/ports"
)

// LocalAdapter implements ports.FileSystemAdapter for a vault on local disk
type LocalAdapter struct {
	basePath string
}

var _ ports.FileSystemAdapter = (*LocalAdapter)(nil)

// NewLocalAdapter creates an adapter rooted at basePath
func NewLocalAdapter(basePath string) *LocalAdapter {
	return &LocalAdapter{basePath: basePath}
}

func (a *LocalAdapter) Name() string     { return "local" }
func (a *LocalAdapter) BasePath() string { return a.basePath }

// Vault implements ports.Vault
type Vault struct {
	adapter   ports.StorageAdapter
	configDir string
}

// NewVault creates a vault over adapter with the given config folder
func NewVault(adapter ports.StorageAdapter, configDir string) *Vault {
	return &Vault{adapter: adapter, configDir: configDir}
}

func (v *Vault) Adapter() ports.StorageAdapter { return v.adapter }
func (v *Vault) ConfigDir() string             { return v.configDir }

// Host implements ports.Host for a vault directory
type Host struct {
	vault     *Vault
	statusBar *StatusBar
}

var _ ports.Host = (*Host)(nil)

// OpenHost resolves vaultPath to an absolute directory and builds a host on it.
func OpenHost(vaultPath, configDir string, statusBar *StatusBar) (*Host, error) {
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault is not a directory: %s", abs)
	}

	return NewHost(NewVault(NewLocalAdapter(abs), configDir), statusBar), nil
}

// NewHost creates a host. A nil statusBar gets a fresh one.
func NewHost(vault *Vault, statusBar *StatusBar) *Host {
	if statusBar == nil {
		statusBar = NewStatusBar()
	}
	return &Host{vault: vault, statusBar: statusBar}
}

func (h *Host) Vault() ports.Vault { return h.vault }

func (h *Host) AddStatusBarItem() ports.StatusBarItem { return h.statusBar.Add() }

// StatusBar returns the host's status bar
func (h *Host) StatusBar() *StatusBar { return h.statusBar }
