package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

const defaultMaxAttempts = 3

// Theme holds message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithSubset limits prompting to matching fields.
func WithSubset(subset render.FieldSubset) Option {
	return func(p *Prompter) {
		p.subset = subset
	}
}

// WithMaxAttempts caps re-prompts for a field that keeps failing. Zero or
// less means unlimited.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		p.maxAttempts = n
	}
}

// WithSentinel sets the value offered as the "runtime input" choice in
// selects. Defaults to runtimevalue.DefaultSentinel.
func WithSentinel(sentinel string) Option {
	return func(p *Prompter) {
		if strings.TrimSpace(sentinel) != "" {
			p.sentinel = sentinel
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Prompter asks for every field of a form in a terminal. Answers are written
// through Coordinator.Set, and a field is asked again while the coordinator
// reports errors for it.
type Prompter struct {
	driver      PromptDriver
	subset      render.FieldSubset
	maxAttempts int
	sentinel    string
	theme       Theme
	logger      *zap.Logger
}

// New builds a Prompter backed by survey unless a driver is supplied.
func New(options ...Option) *Prompter {
	p := &Prompter{
		maxAttempts: defaultMaxAttempts,
		sentinel:    runtimevalue.DefaultSentinel,
		theme:       Theme{ErrorPrefix: "✗ "},
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	return p
}

// Run prompts for each editable field in declaration order and returns the
// final validation report. Read-only and unsupported fields are announced
// but not asked.
func (p *Prompter) Run(ctx context.Context, c *form.Coordinator) (form.Report, error) {
	if ctx == nil {
		return form.Report{}, errors.New("tui: context is required")
	}
	snapshot := render.Build(c, render.Options{Subset: p.subset})

	for _, field := range snapshot.Fields {
		if field.Unsupported || field.ReadOnly {
			if err := p.driver.Info(ctx, p.theme.InfoPrefix+fmt.Sprintf("skipping %s (%s)", field.Path, skipReason(field))); err != nil {
				return form.Report{}, err
			}
			continue
		}
		if err := p.promptField(ctx, c, field); err != nil {
			return form.Report{}, err
		}
	}
	return c.Validate(), nil
}

func (p *Prompter) promptField(ctx context.Context, c *form.Coordinator, field inputs.RenderDescriptor) error {
	for attempt := 1; ; attempt++ {
		answer, err := p.ask(ctx, field)
		if err != nil {
			return err
		}
		if err := c.Set(field.Path, answer); err != nil {
			return err
		}

		errs := c.Validate().Errors[field.Path]
		if len(errs) == 0 {
			return nil
		}
		p.logger.Debug("invalid answer", zap.String("path", field.Path), zap.Strings("errors", errs))
		for _, msg := range errs {
			if err := p.driver.Info(ctx, p.theme.ErrorPrefix+fmt.Sprintf("%s: %s", field.Path, msg)); err != nil {
				return err
			}
		}
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Path)
		}

		// Re-read so the next prompt defaults to the rejected answer.
		for _, desc := range c.Render() {
			if desc.Path == field.Path {
				field = desc
				break
			}
		}
	}
}

func (p *Prompter) ask(ctx context.Context, field inputs.RenderDescriptor) (any, error) {
	message := field.Label
	if strings.TrimSpace(message) == "" {
		message = field.Path
	}
	help := field.Description
	current := field.Raw

	switch field.Kind {
	case inputs.FieldCheckbox:
		if !deferred(field.ValueKind) && !acceptsDeferred(field) {
			def, _ := strconv.ParseBool(current)
			return p.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: help})
		}
		field.Options = []inputs.Option{{Value: "true"}, {Value: "false"}}
		return p.selectOne(ctx, field, message, help)

	case inputs.FieldSelect:
		return p.selectOne(ctx, field, message, help)

	case inputs.FieldMultiSelect:
		if len(field.Options) == 0 {
			return p.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
		}
		options, values := p.choices(field)
		indices, err := p.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  options,
			Defaults: indicesOf(values, splitList(current)),
			Help:     help,
		})
		if err != nil {
			return nil, err
		}
		selected := valuesAt(values, indices)
		for _, value := range selected {
			if value == p.sentinel || (deferred(field.ValueKind) && value == current) {
				return value, nil
			}
		}
		return strings.Join(selected, ","), nil

	case inputs.FieldPassword:
		return p.driver.Password(ctx, InputConfig{Message: message, Default: current, Help: help})

	case inputs.FieldTextArea:
		return p.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: help})

	default:
		if len(field.Options) > 0 {
			field.Kind = inputs.FieldSelect
			return p.ask(ctx, field)
		}
		if help == "" {
			help = field.Placeholder
		}
		return p.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
	}
}

func (p *Prompter) selectOne(ctx context.Context, field inputs.RenderDescriptor, message, help string) (any, error) {
	options, values := p.choices(field)
	idx, err := p.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(values, field.Raw),
		Help:         help,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

// choices returns display labels and submitted values. The runtime input
// sentinel is offered when the field accepts runtime values, and a current
// runtime input or expression can be kept as is.
func (p *Prompter) choices(field inputs.RenderDescriptor) ([]string, []string) {
	labels := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	for _, opt := range field.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		labels = append(labels, label)
		values = append(values, opt.Value)
	}
	if allows(field, runtimevalue.KindRuntimeInput) {
		labels = append(labels, "runtime input ("+p.sentinel+")")
		values = append(values, p.sentinel)
	}
	if deferred(field.ValueKind) && indexOf(values, field.Raw) < 0 {
		labels = append(labels, "keep current ("+field.Raw+")")
		values = append(values, field.Raw)
	}
	return labels, values
}

func deferred(kind runtimevalue.Kind) bool {
	return kind == runtimevalue.KindRuntimeInput || kind == runtimevalue.KindExpression
}

func acceptsDeferred(field inputs.RenderDescriptor) bool {
	return allows(field, runtimevalue.KindRuntimeInput) || allows(field, runtimevalue.KindExpression)
}

func allows(field inputs.RenderDescriptor, kind runtimevalue.Kind) bool {
	for _, allowed := range field.AllowedKinds {
		if allowed == kind {
			return true
		}
	}
	return false
}

func skipReason(field inputs.RenderDescriptor) string {
	if field.Unsupported {
		return "unsupported type " + string(field.Tag)
	}
	return "read-only"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
