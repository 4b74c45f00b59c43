package inputs

import (
	"errors"
	"fmt"
)

// ErrUnknownInputType is matched by UnknownInputTypeError.
var ErrUnknownInputType = errors.New("inputs: unknown input type")

// UnknownInputTypeError reports a tag without a registered factory.
type UnknownInputTypeError struct {
	Tag Tag
}

func (e *UnknownInputTypeError) Error() string {
	return fmt.Sprintf("inputs: unknown input type %q", e.Tag)
}

// Is allows errors.Is(err, ErrUnknownInputType).
func (e *UnknownInputTypeError) Is(target error) bool {
	return target == ErrUnknownInputType
}
