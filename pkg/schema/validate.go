package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/multierr"

	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

var (
	// ErrEmptySchema is returned when a schema holds no declarations.
	ErrEmptySchema = errors.New("schema: no inputs declared")
	// ErrDuplicatePath is matched by errors reporting a repeated path.
	ErrDuplicatePath = errors.New("schema: duplicate path")
)

// DeclarationError reports a problem with a single declaration.
type DeclarationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DeclarationError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: input %q: %s", e.Path, e.Reason)
}

func (e *DeclarationError) Unwrap() error { return e.Err }

// Validate checks structural rules that must hold before a form is built:
// non-empty unique paths, a type tag on every input, consistent bounds and
// compilable patterns. Every problem is reported, combined with multierr.
func Validate(s Schema) error {
	if len(s.Declarations) == 0 {
		return ErrEmptySchema
	}

	var errs error
	seen := make(map[string]struct{}, len(s.Declarations))
	for idx, decl := range s.Declarations {
		path := CanonicalPath(decl.Path)
		if path == "" {
			errs = multierr.Append(errs, &DeclarationError{Reason: fmt.Sprintf("input #%d has an empty path", idx)})
			continue
		}
		if _, dup := seen[path]; dup {
			errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: "declared more than once", Err: ErrDuplicatePath})
		}
		seen[path] = struct{}{}
		errs = multierr.Append(errs, validateDeclaration(path, decl))
	}
	return errs
}

func validateDeclaration(path string, decl Declaration) error {
	var errs error
	if strings.TrimSpace(decl.Type) == "" {
		errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: "type is required"})
	}

	c := decl.Constraints
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: fmt.Sprintf("min %v exceeds max %v", *c.Min, *c.Max)})
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: "minLength must not be negative"})
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: fmt.Sprintf("minLength %d exceeds maxLength %d", *c.MinLength, *c.MaxLength)})
	}
	if c.Pattern != "" {
		if _, err := regexp2.Compile(c.Pattern, regexp2.ECMAScript); err != nil {
			errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: "invalid pattern", Err: err})
		}
	}
	for _, kind := range decl.AllowedKinds {
		if !knownKind(kind) {
			errs = multierr.Append(errs, &DeclarationError{Path: path, Reason: fmt.Sprintf("unknown value kind %q", kind)})
		}
	}
	return errs
}

func knownKind(kind runtimevalue.Kind) bool {
	for _, candidate := range runtimevalue.Kinds() {
		if candidate == kind {
			return true
		}
	}
	return false
}
