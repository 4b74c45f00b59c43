// Package jsondoc renders a form snapshot as a JSON document for clients
// that draw their own controls.
package jsondoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the document using indent for each level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return "json" }

func (r *Renderer) ContentType() string { return "application/json" }

func (r *Renderer) Render(ctx context.Context, form render.Form) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form.Fields == nil {
		form.Fields = []inputs.RenderDescriptor{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(form); err != nil {
		return nil, fmt.Errorf("jsondoc: encode form: %w", err)
	}
	return buf.Bytes(), nil
}
