package actions

import (
	"context"
	"fmt"
	"os"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// WriteFileConfig configures write-file.
type WriteFileConfig struct {
	Path     string `mapstructure:"path"`
	Text     string `mapstructure:"text"`
	Encoding string `mapstructure:"encoding"`
}

// NewFileWriterFactory is the write-file factory.
func NewFileWriterFactory(ext *application.ExtensionContext) (ports.ActionBuilder, error) {
	return ports.ActionBuilderFunc(func(config domain.ActionConfig) (ports.Action, error) {
		var cfg WriteFileConfig
		if err := decode(config, &cfg); err != nil {
			return nil, err
		}
		return &FileWriter{config: cfg, ext: ext}, nil
	}), nil
}

// FileWriter replaces a file's contents with rendered text. Parent
// directories are not created.
type FileWriter struct {
	config WriteFileConfig
	ext    *application.ExtensionContext
}

func (w *FileWriter) Execute(_ context.Context, code *domain.CodeBlockDescriptor) error {
	if err := application.ValidateRequired("path", w.config.Path); err != nil {
		return err
	}

	path := w.ext.Render(w.config.Path, code)
	text := w.ext.Render(w.config.Text, code)
	data, err := Encode(text, w.ext.Render(w.config.Encoding, code))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
