// Package runtimeinputs is the convenience entry point: it re-exports the
// types most callers need and wraps the orchestrator for one-call rendering.
package runtimeinputs

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/renderers/html"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// Value is the classified form of a raw input.
type Value = runtimevalue.Value

// Schema is an ordered set of input declarations.
type Schema = schema.Schema

// Values is the resolved map handed to a Submitter.
type Values = form.Values

// Report aggregates validation results.
type Report = form.Report

// RenderOptions describes per-request overrides such as server-side errors
// or hidden fields.
type RenderOptions = render.Options

// FieldSubset aliases render.FieldSubset for partial rendering.
type FieldSubset = render.FieldSubset

// Classify resolves raw against the declared primitive with the default
// sentinel and expression pattern.
func Classify(raw any, primitive runtimevalue.Primitive) (Value, error) {
	return runtimevalue.Classify(raw, primitive)
}

// NewForm builds a submission coordinator over s.
func NewForm(s Schema, options ...form.Option) (*form.Coordinator, error) {
	return form.New(s, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the schema at source, prefills values and renders the
// HTML preview with validation errors attached.
func GenerateHTML(ctx context.Context, source schema.Source, values map[string]any, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Values:   values,
		Validate: len(values) > 0,
		Renderer: "html",
	})
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
