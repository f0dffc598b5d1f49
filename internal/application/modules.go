package application

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionModule is a loaded extension: a set of named action builder
// factories contributed from outside the binary.
type ExtensionModule struct {
	Actions map[string]ActionBuilderFactory
}

// ModuleLoader loads one extension module file.
type ModuleLoader interface {
	Load(path string) (*ExtensionModule, error)
}

// ModuleStatus records the outcome of loading one discovered module.
type ModuleStatus struct {
	Name    string
	Path    string
	Actions []string
	Err     error
}

// loadModules loads every file in dir and registers its actions under its own
// ExtensionContext. A failing module is recorded and skipped; it never stops
// the others. A missing directory means no modules.
func (p *Plugin) loadModules(dir string, loader ModuleLoader) ([]ModuleStatus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read extensions directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var statuses []ModuleStatus
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		status := p.loadModule(filepath.Join(dir, entry.Name()), entry.Name(), loader)
		if status.Err != nil {
			slog.Error("failed to load extension module", "module", status.Name, "error", status.Err)
		} else {
			slog.Info("loaded extension module", "module", status.Name, "actions", status.Actions)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (p *Plugin) loadModule(path, name string, loader ModuleLoader) (status ModuleStatus) {
	status = ModuleStatus{Name: name, Path: path}

	defer func() {
		if r := recover(); r != nil {
			status.Err = &ModuleError{Module: name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	module, err := loader.Load(path)
	if err != nil {
		status.Err = &ModuleError{Module: name, Err: err}
		return status
	}

	ext, err := NewExtensionContext(p.host, p.data, name)
	if err != nil {
		status.Err = &ModuleError{Module: name, Err: err}
		return status
	}

	if err := p.registry.RegisterFactories(ext, module.Actions); err != nil {
		status.Err = &ModuleError{Module: name, Err: err}
		return status
	}

	for action := range module.Actions {
		status.Actions = append(status.Actions, action)
	}
	sort.Strings(status.Actions)
	return status
}
