package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

func newTestContext(t *testing.T) *ExtensionContext {
	t.Helper()
	data, err := LoadExtensionData(&memStore{})
	require.NoError(t, err)
	ext, err := NewExtensionContext(newFakeHost("/vault"), data, BuiltinExtensionName)
	require.NoError(t, err)
	return ext
}

func TestRegistry_BuildActions_PreservesOrder(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactories(newTestContext(t), map[string]ActionBuilderFactory{
		"record": rec.factory(),
	}))

	configs := []domain.ActionConfig{
		{"type": "record", "name": "first"},
		{"type": "record", "name": "second"},
		{"type": "record", "name": "third"},
	}
	actions, err := reg.BuildActions(configs)
	require.NoError(t, err)
	require.Len(t, actions, 3)

	require.NoError(t, RunActions(context.Background(), actions, nil))
	assert.Equal(t, []string{"first", "second", "third"}, rec.ran)
}

func TestRegistry_BuildActions_UnknownTypeFailsBatch(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactories(newTestContext(t), map[string]ActionBuilderFactory{
		"record": rec.factory(),
	}))

	actions, err := reg.BuildActions([]domain.ActionConfig{
		{"type": "record", "name": "first"},
		{"type": "teleport"},
		{"type": "record", "name": "third"},
	})

	assert.Empty(t, actions)
	assert.ErrorIs(t, err, ErrUnknownActionType)
	var unknown *UnknownActionTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "teleport", unknown.Type)
}

func TestRegistry_BuildActions_BuilderErrorFailsBatch(t *testing.T) {
	reg := NewRegistry()
	reg.Register("ok", ports.ActionBuilderFunc(func(domain.ActionConfig) (ports.Action, error) {
		return ports.ActionFunc(func(context.Context, *domain.CodeBlockDescriptor) error { return nil }), nil
	}))
	reg.Register("bad", ports.ActionBuilderFunc(func(domain.ActionConfig) (ports.Action, error) {
		return nil, errors.New("args must be a list")
	}))

	actions, err := reg.BuildActions([]domain.ActionConfig{{"type": "ok"}, {"type": "bad"}})
	assert.Empty(t, actions)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 1, actionErr.Index)
	assert.Equal(t, "bad", actionErr.Type)
}

func TestRegistry_RegisterFactories_AllOrNothing(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry()

	err := reg.RegisterFactories(newTestContext(t), map[string]ActionBuilderFactory{
		"good": rec.factory(),
		"broken": func(*ExtensionContext) (ports.ActionBuilder, error) {
			return nil, errors.New("cannot start")
		},
	})

	require.Error(t, err)
	assert.Empty(t, reg.Names())
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	first := &recorder{}
	second := &recorder{}
	reg := NewRegistry()
	ext := newTestContext(t)

	require.NoError(t, reg.RegisterFactories(ext, map[string]ActionBuilderFactory{"x": first.factory()}))
	require.NoError(t, reg.RegisterFactories(ext, map[string]ActionBuilderFactory{"x": second.factory()}))

	actions, err := reg.BuildActions([]domain.ActionConfig{{"type": "x", "name": "run"}})
	require.NoError(t, err)
	require.NoError(t, RunActions(context.Background(), actions, nil))

	assert.Empty(t, first.ran)
	assert.Equal(t, []string{"run"}, second.ran)
	assert.Equal(t, []string{"x"}, reg.Names())
}

func TestRunActions_StopsAtFirstFailure(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	actions := []ports.Action{
		rec.action("first", nil),
		rec.action("second", boom),
		rec.action("third", nil),
	}

	err := RunActions(context.Background(), actions, nil)

	assert.ErrorIs(t, err, boom)
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, 1, actionErr.Index)
	assert.Equal(t, []string{"first", "second"}, rec.ran, "third must never execute")
}

func TestRunActions_PassesDescriptor(t *testing.T) {
	var seen *domain.CodeBlockDescriptor
	code := &domain.CodeBlockDescriptor{Text: "hello"}
	action := ports.ActionFunc(func(_ context.Context, c *domain.CodeBlockDescriptor) error {
		seen = c
		return nil
	})

	require.NoError(t, RunActions(context.Background(), []ports.Action{action}, code))
	assert.Same(t, code, seen)
}

func TestRunActions_CancelledContext(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunActions(ctx, []ports.Action{rec.action("first", nil)}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.ran)
}

func TestRunActions_Empty(t *testing.T) {
	assert.NoError(t, RunActions(context.Background(), nil, nil))
}
