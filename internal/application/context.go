package application

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// ExtensionContext is what one namespace (the built-ins or a single extension
// module) sees of the host: resolved vault paths, its own slice of the
// persisted data, and the status bar.
type ExtensionContext struct {
	host ports.Host
	data *ExtensionData
	name string

	vaultPath string
	configDir string
}

// NewExtensionContext binds name to host. It fails when the vault is not
// backed by a local directory with an absolute root, since every action
// resolves paths against it.
func NewExtensionContext(host ports.Host, data *ExtensionData, name string) (*ExtensionContext, error) {
	if err := ValidateRequired("extensionName", name); err != nil {
		return nil, err
	}

	vault := host.Vault()
	adapter, ok := vault.Adapter().(ports.FileSystemAdapter)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAdapter, adapterName(vault.Adapter()))
	}

	basePath := adapter.BasePath()
	if !filepath.IsAbs(basePath) {
		return nil, fmt.Errorf("%w: base path %q is not absolute", ErrUnsupportedAdapter, basePath)
	}

	return &ExtensionContext{
		host:      host,
		data:      data,
		name:      name,
		vaultPath: filepath.Clean(basePath),
		configDir: vault.ConfigDir(),
	}, nil
}

func adapterName(adapter ports.StorageAdapter) string {
	if adapter == nil {
		return "<none>"
	}
	return adapter.Name()
}

// Name returns the extension name, which is also its data namespace.
func (c *ExtensionContext) Name() string { return c.name }

// VaultPath returns the absolute vault root.
func (c *ExtensionContext) VaultPath() string { return c.vaultPath }

// VaultConfigDir returns the host config folder name.
func (c *ExtensionContext) VaultConfigDir() string { return c.configDir }

// Paths returns both vault locations for template rendering.
func (c *ExtensionContext) Paths() domain.VaultPaths {
	return domain.VaultPaths{Path: c.vaultPath, ConfigDir: c.configDir}
}

// PluginDir returns <vault>/<configDir>/plugins/enhancements.
func (c *ExtensionContext) PluginDir() string {
	return filepath.Join(c.vaultPath, c.configDir, "plugins", PluginID)
}

// Render renders template against this context and code.
func (c *ExtensionContext) Render(template string, code *domain.CodeBlockDescriptor) string {
	return domain.Render(template, c.Paths(), code)
}

// AddStatusBarItem creates a new status bar slot through the host.
func (c *ExtensionContext) AddStatusBarItem() ports.StatusBarItem {
	return c.host.AddStatusBarItem()
}

// Data returns this namespace's persisted data; ok is false if none was saved.
func (c *ExtensionContext) Data() (json.RawMessage, bool) {
	return c.data.Get(c.name)
}

// SaveData stores v as this namespace's data and persists the whole mapping.
func (c *ExtensionContext) SaveData(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode data for %s: %w", c.name, err)
	}
	return c.data.Set(c.name, raw)
}
