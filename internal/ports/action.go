package ports

import (
	"context"

	"enhancements/internal/domain"
)

// Action performs one configured effect. code is nil when the trigger has no
// code block or active file.
type Action interface {
	Execute(ctx context.Context, code *domain.CodeBlockDescriptor) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context, code *domain.CodeBlockDescriptor) error

// Execute calls f.
func (f ActionFunc) Execute(ctx context.Context, code *domain.CodeBlockDescriptor) error {
	return f(ctx, code)
}

// ActionBuilder turns one action configuration into an executable Action.
type ActionBuilder interface {
	Build(config domain.ActionConfig) (Action, error)
}

// ActionBuilderFunc adapts a function to the ActionBuilder interface.
type ActionBuilderFunc func(config domain.ActionConfig) (Action, error)

// Build calls f.
func (f ActionBuilderFunc) Build(config domain.ActionConfig) (Action, error) {
	return f(config)
}
