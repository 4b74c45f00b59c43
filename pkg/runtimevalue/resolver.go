package runtimevalue

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	// DefaultSentinel marks a value as a runtime input.
	DefaultSentinel = "<+input>"
	// DefaultExpressionPattern matches the bracketed expression syntax, for
	// example `<+pipeline.variables.tag>`. It is an ECMAScript regex so the
	// same definition can be shared with browser clients.
	DefaultExpressionPattern = `<\+[^<>]+>`

	matchTimeout = 250 * time.Millisecond
)

// Config holds the canonical sentinel and expression definitions. Every input
// variant classifies through the same Config.
type Config struct {
	Sentinel          string
	ExpressionPattern string
}

// DefaultConfig returns the built-in sentinel and expression pattern.
func DefaultConfig() Config {
	return Config{
		Sentinel:          DefaultSentinel,
		ExpressionPattern: DefaultExpressionPattern,
	}
}

// Option customises a Resolver Config.
type Option func(*Config)

// WithSentinel overrides the runtime input sentinel. Blank values are ignored.
func WithSentinel(sentinel string) Option {
	return func(cfg *Config) {
		if trimmed := strings.TrimSpace(sentinel); trimmed != "" {
			cfg.Sentinel = trimmed
		}
	}
}

// WithExpressionPattern overrides the expression pattern. Blank values are
// ignored.
func WithExpressionPattern(pattern string) Option {
	return func(cfg *Config) {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			cfg.ExpressionPattern = trimmed
		}
	}
}

// Resolver classifies raw values. It is immutable after construction and safe
// for concurrent use.
type Resolver struct {
	cfg        Config
	expression *regexp2.Regexp
}

var defaultResolver = MustNew()

// Default returns the resolver built from DefaultConfig.
func Default() *Resolver {
	return defaultResolver
}

// New compiles a Resolver from the default config plus options.
func New(options ...Option) (*Resolver, error) {
	cfg := DefaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	re, err := regexp2.Compile(cfg.ExpressionPattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("runtimevalue: compile expression pattern %q: %w", cfg.ExpressionPattern, err)
	}
	re.MatchTimeout = matchTimeout

	return &Resolver{cfg: cfg, expression: re}, nil
}

// MustNew panics when New fails. Useful for init-time wiring.
func MustNew(options ...Option) *Resolver {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Config returns a copy of the resolver configuration.
func (r *Resolver) Config() Config {
	if r == nil {
		return DefaultConfig()
	}
	return r.cfg
}

// Sentinel returns the runtime input marker.
func (r *Resolver) Sentinel() string {
	return r.Config().Sentinel
}

// IsExpression reports whether raw contains the expression syntax.
func (r *Resolver) IsExpression(raw string) bool {
	if r == nil {
		r = defaultResolver
	}
	if raw == "" {
		return false
	}
	ok, err := r.expression.MatchString(raw)
	return err == nil && ok
}

// IsRuntimeInput reports whether Classify would return a runtime input for
// raw: the sentinel alone or followed by `.` modifiers.
func (r *Resolver) IsRuntimeInput(raw string) bool {
	value, _ := r.Classify(raw, PrimitiveString)
	return value.Kind == KindRuntimeInput
}

// Classify turns a raw value into a Value. The runtime input sentinel wins
// over the expression pattern, and both win over the declared primitive type.
// When a fixed value cannot be coerced the returned Value is still populated
// (Kind fixed, Raw preserved) alongside a *TypeMismatchError.
func (r *Resolver) Classify(raw any, primitive Primitive) (Value, error) {
	if r == nil {
		r = defaultResolver
	}
	text := rawString(raw)
	sentinel := r.cfg.Sentinel

	if text == sentinel {
		return Value{Kind: KindRuntimeInput, Raw: text}, nil
	}
	if strings.HasPrefix(text, sentinel+".") {
		value := Value{Kind: KindRuntimeInput, Raw: text}
		if err := parseModifiers(text, strings.TrimPrefix(text, sentinel), &value); err != nil {
			return value, err
		}
		return value, nil
	}
	if r.IsExpression(text) {
		return Value{Kind: KindExpression, Raw: text}, nil
	}
	return coerce(raw, text, primitive)
}

// Classify uses the default resolver.
func Classify(raw any, primitive Primitive) (Value, error) {
	return defaultResolver.Classify(raw, primitive)
}

func coerce(raw any, text string, primitive Primitive) (Value, error) {
	value := Value{Kind: KindFixed, Raw: text}
	if strings.TrimSpace(text) == "" {
		return value, nil
	}

	switch primitive {
	case PrimitiveNumber:
		if n, ok := numericLiteral(raw); ok {
			value.Fixed = n
			return value, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return value, &TypeMismatchError{Raw: text, Primitive: primitive}
		}
		value.Fixed = n
	case PrimitiveBoolean:
		if b, ok := raw.(bool); ok {
			value.Fixed = b
			return value, nil
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			value.Fixed = true
		case "false":
			value.Fixed = false
		default:
			return value, &TypeMismatchError{Raw: text, Primitive: primitive}
		}
	default:
		value.Fixed = text
	}
	return value, nil
}

func numericLiteral(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func rawString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
