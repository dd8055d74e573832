package hookline

import (
	"errors"
	"fmt"
)

// Hook errors.
var (
	// ErrInvalidCallback indicates a registered value cannot be called.
	// It is reported when identity or invocation is first requested, never at registration.
	ErrInvalidCallback = errors.New("hookline: callback is not callable")

	// ErrCallbackPanic indicates a callback panicked while panic recovery was enabled.
	ErrCallbackPanic = errors.New("hookline: callback panic")

	// ErrFilterType indicates a filter chain produced a value of an unexpected type.
	ErrFilterType = errors.New("hookline: filter result has unexpected type")

	// ErrArgument indicates a callback argument is missing or of the wrong type.
	ErrArgument = errors.New("hookline: bad callback argument")

	// ErrConfig indicates a configuration file could not be used.
	ErrConfig = errors.New("hookline: invalid configuration")
)

// PanicError describes a recovered callback panic.
type PanicError struct {
	Hook      HookName
	Callback  string
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("hookline: callback %q on hook %q panicked: %v", e.Callback, e.Hook, e.Recovered)
}

// Unwrap allows errors.Is(err, ErrCallbackPanic).
func (e *PanicError) Unwrap() error { return ErrCallbackPanic }
