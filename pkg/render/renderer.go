package render

import (
	"context"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
)

// Form is the renderer-agnostic snapshot of a form.
type Form struct {
	ID     string                    `json:"id,omitempty"`
	Title  string                    `json:"title,omitempty"`
	Phase  string                    `json:"phase,omitempty"`
	Fields []inputs.RenderDescriptor `json:"fields"`
	// Errors holds form-level messages, such as a submit failure.
	Errors []string      `json:"errors,omitempty"`
	Hidden []HiddenField `json:"hidden,omitempty"`
}

// Field returns the descriptor for a canonical path.
func (f Form) Field(path string) (inputs.RenderDescriptor, bool) {
	for _, field := range f.Fields {
		if field.Path == path {
			return field, true
		}
	}
	return inputs.RenderDescriptor{}, false
}

// Renderer converts a Form into bytes (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form) ([]byte, error)
}
