package runtimevalue

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is matched by TypeMismatchError.
	ErrTypeMismatch = errors.New("runtimevalue: type mismatch")
	// ErrMalformedRuntimeInput is matched by MalformedRuntimeInputError.
	ErrMalformedRuntimeInput = errors.New("runtimevalue: malformed runtime input")
)

// TypeMismatchError reports a fixed value that cannot be coerced to the
// declared primitive type.
type TypeMismatchError struct {
	Raw       string
	Primitive Primitive
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("runtimevalue: %q is not a valid %s", e.Raw, e.Primitive)
}

// Is allows errors.Is(err, ErrTypeMismatch).
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// MalformedRuntimeInputError reports a runtime input placeholder with modifiers
// that cannot be parsed.
type MalformedRuntimeInputError struct {
	Raw    string
	Reason string
}

func (e *MalformedRuntimeInputError) Error() string {
	return fmt.Sprintf("runtimevalue: malformed runtime input %q: %s", e.Raw, e.Reason)
}

// Is allows errors.Is(err, ErrMalformedRuntimeInput).
func (e *MalformedRuntimeInputError) Is(target error) bool {
	return target == ErrMalformedRuntimeInput
}
