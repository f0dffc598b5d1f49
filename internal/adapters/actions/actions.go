// Package actions provides the built-in action types.
package actions

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"enhancements/internal/application"
	"enhancements/internal/domain"
	"enhancements/internal/ports"
)

// Built-in action type names.
const (
	TypeLaunchProcess = "launch-process"
	TypeMakeDirectory = "make-directory"
	TypeWriteFile     = "write-file"
	TypeExecuteLua    = "execute-lua"
)

// Builtins returns the action types that are always available.
func Builtins() map[string]application.ActionBuilderFactory {
	return map[string]application.ActionBuilderFactory{
		TypeLaunchProcess: NewProcessLauncherFactory(nil),
		TypeMakeDirectory: NewDirectoryMakerFactory,
		TypeWriteFile:     NewFileWriterFactory,
	}
}

// ScriptFactories returns the action types that run arbitrary code from the
// configuration. They are only registered when scripts are enabled.
func ScriptFactories() map[string]application.ActionBuilderFactory {
	return map[string]application.ActionBuilderFactory{
		TypeExecuteLua: NewScriptExecutorFactory,
	}
}

// Factories returns Builtins plus the script types. With scripts disabled
// the script types are still registered, but building one fails with
// ErrScriptsDisabled so the button reports why it is inert.
func Factories(enableScripts bool) map[string]application.ActionBuilderFactory {
	factories := Builtins()
	for name, factory := range ScriptFactories() {
		if enableScripts {
			factories[name] = factory
		} else {
			factories[name] = disabledFactory(name)
		}
	}
	return factories
}

func disabledFactory(name string) application.ActionBuilderFactory {
	return func(*application.ExtensionContext) (ports.ActionBuilder, error) {
		return ports.ActionBuilderFunc(func(domain.ActionConfig) (ports.Action, error) {
			return nil, fmt.Errorf("%w: %s (set --enable-scripts)", application.ErrScriptsDisabled, name)
		}), nil
	}
}

// decode copies an action's configuration into out. Fields are matched by
// their mapstructure tags; unknown keys are ignored and a value of the wrong
// type is an error.
func decode(config domain.ActionConfig, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(config)); err != nil {
		return fmt.Errorf("invalid %s config: %w", config.Type(), err)
	}
	return nil
}
