package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnsupportedAdapter = errors.New("unsupported vault storage adapter")
	ErrUnknownActionType  = errors.New("unknown action type")
	ErrNoActions          = errors.New("no action was specified for this button")
	ErrButtonNotFound     = errors.New("button not found")
	ErrInvalidIcon        = errors.New("invalid icon markup")
	ErrScriptsDisabled    = errors.New("script actions are disabled")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// UnknownActionTypeError is returned when an action list names a type that
// no built-in or extension module registered.
type UnknownActionTypeError struct {
	Type string
}

func (e *UnknownActionTypeError) Error() string {
	return fmt.Sprintf("unknown action type '%s' (not built in, module missing or failed to load)", e.Type)
}

func (e *UnknownActionTypeError) Is(target error) bool {
	return target == ErrUnknownActionType
}

// ActionError reports which action of a sequence failed.
type ActionError struct {
	Index int
	Type  string
	Err   error
}

func (e *ActionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("action %d failed: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("action %d (%s) failed: %v", e.Index, e.Type, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// ModuleError reports an extension module that could not be loaded.
type ModuleError struct {
	Module string
	Err    error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("extension module %s: %v", e.Module, e.Err)
}

func (e *ModuleError) Unwrap() error { return e.Err }
