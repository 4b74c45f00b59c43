package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/i18n"
	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// Phase is the coordinator's lifecycle state.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseValidating Phase = "validating"
	PhaseSubmitted  Phase = "submitted"
)

// Submitter receives the resolved values of a valid form.
type Submitter interface {
	Submit(ctx context.Context, values Values) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, values Values) error

// Submit implements Submitter.
func (fn SubmitterFunc) Submit(ctx context.Context, values Values) error {
	return fn(ctx, values)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRegistry sets the input registry. Defaults to inputs.NewRegistry().
func WithRegistry(registry *inputs.Registry) Option {
	return func(c *Coordinator) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithResolver sets the runtime value resolver shared by every component.
func WithResolver(resolver *runtimevalue.Resolver) Option {
	return func(c *Coordinator) {
		c.env.Resolver = resolver
	}
}

// WithReferences supplies the prefetched reference snapshot.
func WithReferences(snapshot references.Snapshot) Option {
	return func(c *Coordinator) {
		c.env.References = snapshot
	}
}

// WithTranslator resolves label keys and messages for locale.
func WithTranslator(t i18n.Translator, locale string) Option {
	return func(c *Coordinator) {
		c.env.Translator = t
		c.env.Locale = locale
	}
}

// WithMissingTranslationHandler overrides the fallback used for missing keys.
func WithMissingTranslationHandler(handler i18n.MissingTranslationHandler) Option {
	return func(c *Coordinator) {
		c.env.OnMissing = handler
	}
}

// WithSubmitter sets the submit collaborator.
func WithSubmitter(submitter Submitter) Option {
	return func(c *Coordinator) {
		c.submitter = submitter
	}
}

// WithPrefill binds initial raw values after declaration defaults.
func WithPrefill(values map[string]any) Option {
	return func(c *Coordinator) {
		c.prefill = values
	}
}

// WithReadOnly renders every field read-only.
func WithReadOnly(readOnly bool) Option {
	return func(c *Coordinator) {
		c.readOnly = readOnly
	}
}

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Coordinator drives one form through Editing, Validating and Submitted.
// Methods are safe for concurrent use; concurrent edits to the same path are
// last-write-wins.
type Coordinator struct {
	mu         sync.Mutex
	state      *State
	registry   *inputs.Registry
	env        inputs.Env
	submitter  Submitter
	logger     *zap.Logger
	prefill    map[string]any
	readOnly   bool
	phase      Phase
	errors     map[string][]string
	submitErr  error
	generation uint64
}

// New builds a coordinator for s in the Editing phase.
func New(s schema.Schema, options ...Option) (*Coordinator, error) {
	c := &Coordinator{
		registry: inputs.NewRegistry(),
		logger:   zap.NewNop(),
		phase:    PhaseEditing,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	state, err := NewState(s, c.prefill)
	if err != nil {
		return nil, err
	}
	c.state = state
	c.prefill = nil
	c.logger = c.logger.With(zap.String("schema", s.ID))
	return c, nil
}

// Phase returns the current phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Schema returns the schema backing the form.
func (c *Coordinator) Schema() schema.Schema {
	return c.state.Schema()
}

// Set is the single writer for form values. Any edit returns the form to
// Editing and clears the last errors.
func (c *Coordinator) Set(path string, raw any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.state.Set(path, raw); err != nil {
		return err
	}
	c.generation++
	c.errors = nil
	c.submitErr = nil
	c.transition(PhaseEditing)
	return nil
}

// Value returns the raw value bound to path.
func (c *Coordinator) Value(path string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Value(path)
}

// Errors returns the field errors from the last validation or submit.
func (c *Coordinator) Errors() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneErrors(c.errors)
}

// SubmitError returns the last top-level submit failure, if any.
func (c *Coordinator) SubmitError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Validate runs every declaration in order and records the resulting field
// errors. It does not change the phase.
func (c *Coordinator) Validate() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := c.validateLocked()
	c.errors = cloneErrors(report.Errors)
	return report
}

// Render returns one descriptor per declaration with the latest field errors
// attached. Unknown tags render the unsupported placeholder.
func (c *Coordinator) Render() []inputs.RenderDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	decls := c.state.schema.Declarations
	out := make([]inputs.RenderDescriptor, 0, len(decls))
	for _, decl := range decls {
		component, _ := c.component(decl)
		desc := component.Render(c.request(decl))
		if errs := c.errors[desc.Path]; len(errs) > 0 {
			desc.Errors = append([]string(nil), errs...)
		}
		out = append(out, desc)
	}
	return out
}

// Resolve classifies every bound value. Fields that fail classification are
// reported through Validate; here they resolve to their raw text.
func (c *Coordinator) Resolve() map[string]runtimevalue.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked()
}

// Values returns the resolved value map a Submitter would receive.
func (c *Coordinator) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return literals(c.resolveLocked())
}

// Submit validates the form and, when every field passes, hands the resolved
// values to the Submitter. Invalid forms return a *ValidationError without
// calling the Submitter. Submitter errors return a *SubmitFailure and the
// form re-enters Editing. Retrying is left to the caller.
func (c *Coordinator) Submit(ctx context.Context) (Report, error) {
	c.mu.Lock()
	c.transition(PhaseValidating)
	report := c.validateLocked()
	c.errors = cloneErrors(report.Errors)
	c.submitErr = nil

	if !report.Valid() {
		c.transition(PhaseEditing)
		c.mu.Unlock()
		c.logger.Debug("submit rejected", zap.Strings("paths", report.Paths()))
		return report, &ValidationError{Report: report}
	}

	values := literals(c.resolveLocked())
	generation := c.generation
	submitter := c.submitter
	c.mu.Unlock()

	var err error
	if submitter == nil {
		err = errors.New("form: no submitter configured")
	} else {
		err = submitter.Submit(ctx, values)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		failure := &SubmitFailure{Err: err}
		var fields FieldErrorer
		if errors.As(err, &fields) {
			failure.Fields = cloneErrors(fields.FieldErrors())
			if c.generation == generation && len(failure.Fields) > 0 {
				c.errors = cloneErrors(failure.Fields)
			}
		}
		c.submitErr = failure
		c.transition(PhaseEditing)
		c.logger.Warn("submit failed", zap.Error(err))
		return report, failure
	}

	// An edit made while the submitter ran already moved the form back to
	// Editing; the new values have not been submitted.
	if c.generation != generation {
		return report, nil
	}
	c.transition(PhaseSubmitted)
	return report, nil
}

func (c *Coordinator) validateLocked() Report {
	var report Report
	for _, decl := range c.state.schema.Declarations {
		component, supported := c.component(decl)
		if !supported {
			report.Unsupported = append(report.Unsupported, schema.CanonicalPath(decl.Path))
		}
		report.add(component.Validate(c.request(decl)))
	}
	return report
}

func (c *Coordinator) resolveLocked() map[string]runtimevalue.Value {
	out := make(map[string]runtimevalue.Value, len(c.state.schema.Declarations))
	for _, decl := range c.state.schema.Declarations {
		component, _ := c.component(decl)
		req := c.request(decl)
		if req.Raw() == nil {
			continue
		}
		value, err := component.Classify(req)
		if err != nil && value.Kind == "" {
			value = runtimevalue.Fixed(fmt.Sprint(req.Raw()), req.Raw())
		}
		out[req.Path()] = value
	}
	return out
}

func (c *Coordinator) component(decl schema.Declaration) (inputs.Component, bool) {
	return c.registry.ResolveOrFallback(inputs.Tag(decl.Type))
}

func (c *Coordinator) request(decl schema.Declaration) inputs.Request {
	return inputs.Request{
		Declaration: decl,
		Values:      c.state,
		ReadOnly:    c.readOnly,
		Env:         c.env,
	}
}

func (c *Coordinator) transition(next Phase) {
	if c.phase == next {
		return
	}
	c.logger.Debug("form phase", zap.String("from", string(c.phase)), zap.String("to", string(next)))
	c.phase = next
}

func literals(resolved map[string]runtimevalue.Value) Values {
	out := make(Values, len(resolved))
	for path, value := range resolved {
		out[path] = value.Literal()
	}
	return out
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string][]string, len(src))
	for path, msgs := range src {
		out[path] = append([]string(nil), msgs...)
	}
	return out
}
