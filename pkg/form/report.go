package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
)

// Report aggregates one validation pass in declaration order.
type Report struct {
	Results []inputs.ValidationResult `json:"results"`
	// Errors maps canonical path to messages; only failing paths appear.
	Errors map[string][]string `json:"errors,omitempty"`
	// Unsupported lists paths whose type tag has no registered component.
	Unsupported []string `json:"unsupported,omitempty"`
}

// Valid reports whether no field failed.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Paths returns the failing paths in declaration order.
func (r Report) Paths() []string {
	var out []string
	for _, result := range r.Results {
		if !result.Valid() {
			out = append(out, result.Path)
		}
	}
	return out
}

func (r *Report) add(result inputs.ValidationResult) {
	r.Results = append(r.Results, result)
	if result.Valid() {
		return
	}
	if r.Errors == nil {
		r.Errors = make(map[string][]string)
	}
	r.Errors[result.Path] = append(r.Errors[result.Path], result.Errors()...)
}

// ErrValidation is returned by Submit when at least one field is invalid.
var ErrValidation = errors.New("form: validation failed")

// ValidationError carries the report of a rejected submit.
type ValidationError struct {
	Report Report
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form: validation failed for %d field(s)", len(e.Report.Errors))
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrSubmitFailed matches every *SubmitFailure.
var ErrSubmitFailed = errors.New("form: submit failed")

// SubmitFailure wraps an error reported by the Submitter after a fully
// valid local pass. Fields holds any field errors the collaborator returned.
type SubmitFailure struct {
	Err    error
	Fields map[string][]string
}

func (e *SubmitFailure) Error() string {
	if e.Err == nil {
		return ErrSubmitFailed.Error()
	}
	return "form: submit failed: " + e.Err.Error()
}

// Unwrap exposes the collaborator error.
func (e *SubmitFailure) Unwrap() error { return e.Err }

// Is matches ErrSubmitFailed.
func (e *SubmitFailure) Is(target error) bool {
	return target == ErrSubmitFailed
}

// FieldErrorer is implemented by submit errors that carry path-keyed field
// errors, such as render.MapErrorPayload results.
type FieldErrorer interface {
	FieldErrors() map[string][]string
}
