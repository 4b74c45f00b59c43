// Package html renders a form snapshot as an HTML preview through pongo2
// templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	rendertemplate "github.com/goliatone/go-runtimeinputs/pkg/render/template"
	"github.com/goliatone/go-runtimeinputs/pkg/render/template/pongo"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	sanitizer        Sanitizer
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme attaches theme tokens: CSS variables become an inline style on
// the form element and AssetURL resolves the stylesheet link.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithSanitizer overrides the help text sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.sanitizer = s
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	sanitizer Sanitizer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = HelpTextPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		sanitizer: cfg.sanitizer,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form render.Form) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]fieldView, 0, len(form.Fields))
	for _, desc := range form.Fields {
		fields = append(fields, r.field(desc))
	}

	result, err := r.templates.RenderTemplate(TemplateName, map[string]any{
		"form":       form,
		"fields":     fields,
		"theme":      newThemeView(r.theme),
		"stylesheet": stylesheetURL(r.theme),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type fieldView struct {
	ID          string       `json:"id"`
	Path        string       `json:"path"`
	Tag         string       `json:"tag"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"inputType"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Description string       `json:"description,omitempty"`
	Raw         string       `json:"raw,omitempty"`
	ValueKind   string       `json:"valueKind"`
	Checked     bool         `json:"checked,omitempty"`
	ReadOnly    bool         `json:"readOnly,omitempty"`
	Required    bool         `json:"required,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type optionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

func (r *Renderer) field(desc inputs.RenderDescriptor) fieldView {
	label := desc.Label
	if label == "" {
		label = desc.Path
	}
	view := fieldView{
		ID:          fieldID(desc.Path),
		Path:        desc.Path,
		Tag:         string(desc.Tag),
		Kind:        string(desc.Kind),
		InputType:   inputType(desc),
		Label:       label,
		Placeholder: desc.Placeholder,
		Description: r.sanitizer.Sanitize(desc.Description),
		Raw:         desc.Raw,
		ValueKind:   string(desc.ValueKind),
		Checked:     desc.ValueKind == runtimevalue.KindFixed && strings.EqualFold(strings.TrimSpace(desc.Raw), "true"),
		ReadOnly:    desc.ReadOnly,
		Required:    desc.Required,
		Errors:      desc.Errors,
	}

	selected := selectedValues(desc)
	known := make(map[string]bool, len(desc.Options))
	for _, opt := range desc.Options {
		known[opt.Value] = true
		view.Options = append(view.Options, optionView{Label: opt.Label, Value: opt.Value, Selected: selected[opt.Value]})
	}
	if desc.Kind == inputs.FieldSelect || desc.Kind == inputs.FieldMultiSelect {
		// Runtime inputs and expressions stay selectable as their raw text.
		if desc.ValueKind != runtimevalue.KindFixed && desc.Raw != "" && !known[desc.Raw] {
			view.Options = append(view.Options, optionView{Label: desc.Raw, Value: desc.Raw, Selected: true})
		}
	}
	return view
}

func selectedValues(desc inputs.RenderDescriptor) map[string]bool {
	out := make(map[string]bool)
	if desc.Raw == "" || desc.ValueKind != runtimevalue.KindFixed {
		return out
	}
	if desc.Kind != inputs.FieldMultiSelect {
		out[strings.TrimSpace(desc.Raw)] = true
		return out
	}
	for _, part := range strings.Split(desc.Raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out[part] = true
		}
	}
	return out
}

func inputType(desc inputs.RenderDescriptor) string {
	// Placeholders such as <+input> are not valid numbers or URLs.
	if desc.ValueKind != runtimevalue.KindFixed && desc.Kind != inputs.FieldPassword {
		return "text"
	}
	switch desc.Kind {
	case inputs.FieldNumber:
		return "number"
	case inputs.FieldEmail:
		return "email"
	case inputs.FieldURL:
		return "url"
	case inputs.FieldPassword:
		return "password"
	default:
		return "text"
	}
}

func fieldID(path string) string {
	replacer := strings.NewReplacer(".", "-", "[", "-", "]", "", " ", "-")
	return "ri-" + replacer.Replace(path)
}

// Themed returns a copy of r rendering with cfg.
func (r *Renderer) Themed(cfg *theme.RendererConfig) render.Renderer {
	clone := *r
	clone.theme = cfg
	return &clone
}
