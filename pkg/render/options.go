package render

import (
	"strings"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// Options tune how Build snapshots a coordinator.
type Options struct {
	// Errors adds field errors keyed by path, typically mapped from a server
	// payload with MapErrorPayload. They are appended after the
	// coordinator's own errors.
	Errors map[string][]string
	// FormErrors adds form-level messages.
	FormErrors []string
	Hidden     map[string]string
	Subset     FieldSubset
}

// Build snapshots c into a Form. The coordinator's last submit failure is
// surfaced as a form-level error.
func Build(c *form.Coordinator, opts Options) Form {
	s := c.Schema()
	out := Form{
		ID:     s.ID,
		Title:  s.Title,
		Phase:  string(c.Phase()),
		Fields: c.Render(),
		Hidden: SortedHiddenFields(opts.Hidden),
	}

	if len(opts.Errors) > 0 {
		extra := make(map[string][]string, len(opts.Errors))
		for path, msgs := range opts.Errors {
			canonical := schema.CanonicalPath(path)
			extra[canonical] = append(extra[canonical], msgs...)
		}
		for i := range out.Fields {
			if msgs := extra[out.Fields[i].Path]; len(msgs) > 0 {
				out.Fields[i].Errors = MergeFormErrors(out.Fields[i].Errors, msgs...)
			}
		}
	}

	var formErrors []string
	if err := c.SubmitError(); err != nil {
		formErrors = append(formErrors, strings.TrimPrefix(err.Error(), "form: "))
	}
	out.Errors = MergeFormErrors(formErrors, opts.FormErrors...)

	ApplySubset(&out, opts.Subset)
	return out
}
