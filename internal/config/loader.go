package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"enhancements/internal/domain"
)

// FileSystem abstracts file reads for testability
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads from the real filesystem
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads the plugin's config.json
type Loader struct {
	fs FileSystem
}

// NewLoader creates a Loader backed by the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: OSFileSystem{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// LoadPluginConfig reads the config at path. A missing file yields an empty
// config; unreadable or malformed files are errors.
func (l *Loader) LoadPluginConfig(path string) (*domain.Config, error) {
	cfg := &domain.Config{}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, b := range cfg.CodeBlockButtons {
		switch b.Align {
		case "":
			cfg.CodeBlockButtons[i].Align = domain.AlignLeft
		case domain.AlignLeft, domain.AlignRight:
		default:
			slog.Warn("unknown code block button alignment, using left", "button", b.Text, "index", i, "align", b.Align)
			cfg.CodeBlockButtons[i].Align = domain.AlignLeft
		}
	}

	return cfg, nil
}
