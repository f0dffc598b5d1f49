package actions

import (
	"context"
	"fmt"
	"os"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// MakeDirectoryConfig configures make-directory.
type MakeDirectoryConfig struct {
	Path      string `mapstructure:"path"`
	Recursive bool   `mapstructure:"recursive"`
}

// NewDirectoryMakerFactory is the make-directory factory.
func NewDirectoryMakerFactory(ext *application.ExtensionContext) (ports.ActionBuilder, error) {
	return ports.ActionBuilderFunc(func(config domain.ActionConfig) (ports.Action, error) {
		var cfg MakeDirectoryConfig
		if err := decode(config, &cfg); err != nil {
			return nil, err
		}
		return &DirectoryMaker{config: cfg, ext: ext}, nil
	}), nil
}

// DirectoryMaker creates a directory. Without recursive it fails when the
// directory exists or its parent does not.
type DirectoryMaker struct {
	config MakeDirectoryConfig
	ext    *application.ExtensionContext
}

func (m *DirectoryMaker) Execute(_ context.Context, code *domain.CodeBlockDescriptor) error {
	if err := application.ValidateRequired("path", m.config.Path); err != nil {
		return err
	}

	path := m.ext.Render(m.config.Path, code)
	mkdir := os.Mkdir
	if m.config.Recursive {
		mkdir = os.MkdirAll
	}
	if err := mkdir(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
