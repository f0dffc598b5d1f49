package ports

// StorageAdapter is whatever backs the vault. Only adapters that also
// implement FileSystemAdapter can be used by actions.
type StorageAdapter interface {
	Name() string
}

// FileSystemAdapter is a StorageAdapter rooted in a local directory.
type FileSystemAdapter interface {
	StorageAdapter
	// BasePath returns the absolute vault root.
	BasePath() string
}

// Vault describes the vault the plugin runs against.
type Vault interface {
	Adapter() StorageAdapter
	// ConfigDir is the host config folder, relative to the vault root.
	ConfigDir() string
}

// StatusBarItem is a single slot in the host status bar.
type StatusBarItem interface {
	SetText(text string)
	Clear()
}

// Host is the application the plugin is loaded into.
type Host interface {
	Vault() Vault
	AddStatusBarItem() StatusBarItem
}

// DataStore persists the plugin's data blob. Load and Save always operate on
// the whole blob; callers own any per-namespace merging.
type DataStore interface {
	// Load returns the stored blob, or nil if nothing was ever saved.
	Load() ([]byte, error)
	Save(data []byte) error
}
