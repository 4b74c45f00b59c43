package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/i18n"
	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/renderers/html"
	"github.com/goliatone/go-runtimeinputs/pkg/renderers/jsondoc"
	"github.com/goliatone/go-runtimeinputs/pkg/renderers/tui"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader *schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithInputRegistry replaces the built-in input type registry.
func WithInputRegistry(registry *inputs.Registry) Option {
	return func(o *Orchestrator) {
		o.inputs = registry
	}
}

// WithResolver sets the runtime value resolver shared by every form.
func WithResolver(resolver *runtimevalue.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithReferences merges reference data into every form.
func WithReferences(snapshot references.Snapshot) Option {
	return func(o *Orchestrator) {
		o.references = o.references.Merge(snapshot)
	}
}

// WithReferencesSource loads reference data through the schema loader before
// the first form is built.
func WithReferencesSource(src schema.Source) Option {
	return func(o *Orchestrator) {
		if src != nil {
			o.referenceSources = append(o.referenceSources, src)
		}
	}
}

// WithTranslator localises labels and messages.
func WithTranslator(t i18n.Translator, locale string) Option {
	return func(o *Orchestrator) {
		o.translator = t
		o.locale = locale
	}
}

// WithSubmitter sets the collaborator used by Submit.
func WithSubmitter(submitter form.Submitter) Option {
	return func(o *Orchestrator) {
		o.submitter = submitter
	}
}

// WithThemeSelector resolves theme and variant choices ahead of rendering.
// Renderers implementing ThemeableRenderer receive the resolved config.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithSchemaCache keeps up to size loaded schemas keyed by source location.
func WithSchemaCache(size int) Option {
	return func(o *Orchestrator) {
		o.cacheSize = size
	}
}

// WithLogger sets the logger handed to coordinators.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ThemeableRenderer is implemented by renderers that accept theme tokens.
type ThemeableRenderer interface {
	render.Renderer
	Themed(cfg *theme.RendererConfig) render.Renderer
}

// Orchestrator coordinates the full pipeline from schema source to rendered
// output or submission. It applies defaults (built-in input types, html,
// json and text renderers) while remaining open to dependency injection.
type Orchestrator struct {
	loader           *schema.Loader
	registry         *render.Registry
	defaultRenderer  string
	inputs           *inputs.Registry
	resolver         *runtimevalue.Resolver
	references       references.Snapshot
	referenceSources []schema.Source
	translator       i18n.Translator
	locale           string
	submitter        form.Submitter
	themeSelector    theme.ThemeSelector
	cacheSize        int
	cache            *lru.Cache[string, schema.Schema]
	logger           *zap.Logger
	initialiseErr    error

	mu               sync.Mutex
	referencesLoaded bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form interaction.
type Request struct {
	// Source identifies where the schema lives. Optional when Schema is set.
	Source schema.Source
	// Schema bypasses the loader.
	Schema *schema.Schema
	// Values prefill the form by path.
	Values map[string]any
	// ReadOnly renders every field read-only.
	ReadOnly bool
	// Validate runs validation before rendering so errors are attached.
	Validate bool
	// Renderer names the renderer to use; empty selects the default.
	Renderer      string
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.Options
}

// Coordinator loads the schema and returns a coordinator seeded with the
// request values.
func (o *Orchestrator) Coordinator(ctx context.Context, req Request) (*form.Coordinator, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	snapshot, err := o.loadReferences(ctx)
	if err != nil {
		return nil, err
	}

	s, err := o.resolveSchema(ctx, req)
	if err != nil {
		return nil, err
	}

	options := []form.Option{
		form.WithRegistry(o.inputs),
		form.WithReferences(snapshot),
		form.WithPrefill(req.Values),
		form.WithReadOnly(req.ReadOnly),
		form.WithLogger(o.logger.With(zap.String("form", s.ID))),
	}
	if o.resolver != nil {
		options = append(options, form.WithResolver(o.resolver))
	}
	if o.translator != nil {
		options = append(options, form.WithTranslator(o.translator, o.locale))
	}
	if o.submitter != nil {
		options = append(options, form.WithSubmitter(o.submitter))
	}

	c, err := form.New(s, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return c, nil
}

// Generate builds the form and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	c, err := o.Coordinator(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Validate {
		c.Validate()
	}
	return o.Render(ctx, c, req)
}

// Render snapshots an existing coordinator and renders it.
func (o *Orchestrator) Render(ctx context.Context, c *form.Coordinator, req Request) ([]byte, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	if themeable, ok := renderer.(ThemeableRenderer); ok && o.themeSelector != nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		renderer = themeable.Themed(cfg)
	}

	output, err := renderer.Render(ctx, render.Build(c, req.RenderOptions))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Submit builds the form and submits it through the configured submitter.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (form.Report, error) {
	c, err := o.Coordinator(ctx, req)
	if err != nil {
		return form.Report{}, err
	}
	return c.Submit(ctx)
}

// References returns the configured reference data, loading the reference
// sources on first use.
func (o *Orchestrator) References(ctx context.Context) (references.Snapshot, error) {
	return o.loadReferences(ctx)
}

// Inputs exposes the input type registry.
func (o *Orchestrator) Inputs() *inputs.Registry {
	return o.inputs
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveSchema(ctx context.Context, req Request) (schema.Schema, error) {
	if req.Schema != nil {
		return *req.Schema, nil
	}
	if req.Source == nil {
		return schema.Schema{}, errors.New("orchestrator: source or schema is required")
	}

	key := string(req.Source.Kind()) + ":" + req.Source.Location()
	if o.cache != nil {
		if s, ok := o.cache.Get(key); ok {
			return s, nil
		}
	}
	s, err := o.loader.LoadSchema(ctx, req.Source)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("orchestrator: load schema: %w", err)
	}
	if o.cache != nil {
		o.cache.Add(key, s)
	}
	return s, nil
}

func (o *Orchestrator) loadReferences(ctx context.Context) (references.Snapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.referencesLoaded {
		return o.references, nil
	}
	merged := o.references
	for _, src := range o.referenceSources {
		doc, err := o.loader.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load references: %w", err)
		}
		snapshot, err := references.Parse(doc.Raw())
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse references %s: %w", src.Location(), err)
		}
		merged = merged.Merge(snapshot)
	}
	o.references = merged
	o.referencesLoaded = true
	return merged, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = schema.NewLoader()
	}
	if o.inputs == nil {
		o.inputs = inputs.NewRegistry()
	}
	if o.cacheSize > 0 {
		cache, err := lru.New[string, schema.Schema](o.cacheSize)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: schema cache: %w", err)
			return
		}
		o.cache = cache
	}
	if o.registry == nil {
		htmlRenderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(htmlRenderer, jsondoc.New(jsondoc.WithIndent("  ")), tui.Summary{})
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
