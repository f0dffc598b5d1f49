package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// ActionBuilderFactory creates the builder for one action type. It runs once
// per ExtensionContext, at plugin load.
type ActionBuilderFactory func(ext *ExtensionContext) (ports.ActionBuilder, error)

// Registry maps action type names to builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]ports.ActionBuilder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]ports.ActionBuilder)}
}

// Register binds name to builder. A later registration of the same name wins.
func (r *Registry) Register(name string, builder ports.ActionBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[name]; exists {
		slog.Warn("action type registered twice, replacing", "type", name)
	}
	r.builders[name] = builder
}

// RegisterFactories creates a builder from every factory using ext and
// registers them. Nothing is registered if any factory fails.
func (r *Registry) RegisterFactories(ext *ExtensionContext, factories map[string]ActionBuilderFactory) error {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)

	built := make(map[string]ports.ActionBuilder, len(names))
	for _, name := range names {
		builder, err := factories[name](ext)
		if err != nil {
			return fmt.Errorf("failed to create builder for %s: %w", name, err)
		}
		built[name] = builder
	}

	for _, name := range names {
		r.Register(name, built[name])
	}
	return nil
}

// Lookup returns the builder registered for name.
func (r *Registry) Lookup(name string) (ports.ActionBuilder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	builder, ok := r.builders[name]
	return builder, ok
}

// Names returns all registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildActions builds one Action per config, in order. If any type is
// unknown or any builder fails, no actions are returned.
func (r *Registry) BuildActions(configs []domain.ActionConfig) ([]ports.Action, error) {
	builders := make([]ports.ActionBuilder, len(configs))
	for i, cfg := range configs {
		builder, ok := r.Lookup(cfg.Type())
		if !ok {
			return nil, &UnknownActionTypeError{Type: cfg.Type()}
		}
		builders[i] = builder
	}

	actions := make([]ports.Action, len(configs))
	for i, cfg := range configs {
		action, err := builders[i].Build(cfg)
		if err != nil {
			return nil, &ActionError{Index: i, Type: cfg.Type(), Err: err}
		}
		actions[i] = &typedAction{Action: action, actionType: cfg.Type()}
	}
	return actions, nil
}

// typedAction remembers the configured type for error reporting.
type typedAction struct {
	ports.Action
	actionType string
}

func (a *typedAction) ActionType() string { return a.actionType }

// RunActions executes actions one after another. The first failure stops the
// sequence; actions that already ran are not undone.
func RunActions(ctx context.Context, actions []ports.Action, code *domain.CodeBlockDescriptor) error {
	for i, action := range actions {
		if err := ctx.Err(); err != nil {
			return &ActionError{Index: i, Type: actionType(action), Err: err}
		}

		slog.Debug("running action", "index", i, "type", actionType(action))
		if err := action.Execute(ctx, code); err != nil {
			return &ActionError{Index: i, Type: actionType(action), Err: err}
		}
	}
	return nil
}

func actionType(action ports.Action) string {
	if typed, ok := action.(interface{ ActionType() string }); ok {
		return typed.ActionType()
	}
	return ""
}
