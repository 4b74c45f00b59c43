package inputs

import (
	"github.com/goliatone/go-runtimeinputs/pkg/i18n"
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// Tag identifies an input type.
type Tag string

const (
	TagString           Tag = "string"
	TagNumber           Tag = "number"
	TagTextArea         Tag = "text_area"
	TagEmail            Tag = "email"
	TagURL              Tag = "url"
	TagBoolean          Tag = "boolean"
	TagDuration         Tag = "duration"
	TagHTTPMethod       Tag = "http_method"
	TagDelegateSelector Tag = "delegate_selector"
	TagConnector        Tag = "connector"
	TagJenkinsConnector Tag = "jenkins_connector"
	TagSecret           Tag = "secret"
)

// FieldKind is the renderer-agnostic control a descriptor asks for.
type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldNumber      FieldKind = "number"
	FieldTextArea    FieldKind = "textarea"
	FieldEmail       FieldKind = "email"
	FieldURL         FieldKind = "url"
	FieldCheckbox    FieldKind = "checkbox"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldPassword    FieldKind = "password"
	FieldPlaceholder FieldKind = "placeholder"
)

// LookupKind aliases references.LookupKind.
type LookupKind = references.LookupKind

// Option aliases references.Option.
type Option = references.Option

// ValueSource exposes the current raw value for a canonical path.
type ValueSource interface {
	Value(path string) (any, bool)
}

// Values is a map-backed ValueSource keyed by canonical path.
type Values map[string]any

// Value implements ValueSource.
func (v Values) Value(path string) (any, bool) {
	raw, ok := v[schema.CanonicalPath(path)]
	return raw, ok
}

// Env is the capability bundle handed to every component call. The zero
// value is usable: it classifies with runtimevalue.Default, has no reference
// data and passes labels through untranslated.
type Env struct {
	Resolver   *runtimevalue.Resolver
	References references.Snapshot
	Translator i18n.Translator
	Locale     string
	OnMissing  i18n.MissingTranslationHandler
}

func (e Env) resolver() *runtimevalue.Resolver {
	if e.Resolver == nil {
		return runtimevalue.Default()
	}
	return e.Resolver
}

func (e Env) translate(key, fallback string, args ...any) string {
	if e.Translator == nil {
		return fallback
	}
	return i18n.Translate(e.Translator, e.Locale, key, fallback, e.OnMissing, args...)
}

// Request carries everything a component needs for one field.
type Request struct {
	Declaration schema.Declaration
	Values      ValueSource
	// Allowed overrides Declaration.AllowedKinds when non-empty.
	Allowed  []runtimevalue.Kind
	ReadOnly bool
	Env      Env
}

// Path returns the canonical path of the declaration.
func (r Request) Path() string {
	return schema.CanonicalPath(r.Declaration.Path)
}

// Raw returns the current raw value, or nil when unset.
func (r Request) Raw() any {
	if r.Values == nil {
		return nil
	}
	raw, ok := r.Values.Value(r.Path())
	if !ok {
		return nil
	}
	return raw
}

// AllowedKinds resolves the effective value kinds; empty means all kinds.
func (r Request) AllowedKinds() []runtimevalue.Kind {
	if len(r.Allowed) > 0 {
		return append([]runtimevalue.Kind(nil), r.Allowed...)
	}
	if len(r.Declaration.AllowedKinds) > 0 {
		return append([]runtimevalue.Kind(nil), r.Declaration.AllowedKinds...)
	}
	return runtimevalue.Kinds()
}

// RenderDescriptor is a declarative description of a field, free of any UI
// framework, that renderers project to HTML, terminals or JSON.
type RenderDescriptor struct {
	Path         string              `json:"path"`
	Tag          Tag                 `json:"tag"`
	Kind         FieldKind           `json:"kind"`
	Label        string              `json:"label,omitempty"`
	Placeholder  string              `json:"placeholder,omitempty"`
	Description  string              `json:"description,omitempty"`
	Value        any                 `json:"value,omitempty"`
	Raw          string              `json:"raw,omitempty"`
	ValueKind    runtimevalue.Kind   `json:"valueKind"`
	AllowedKinds []runtimevalue.Kind `json:"allowedKinds,omitempty"`
	ReadOnly     bool                `json:"readOnly,omitempty"`
	Required     bool                `json:"required,omitempty"`
	Options      []Option            `json:"options,omitempty"`
	Lookup       LookupKind          `json:"lookup,omitempty"`
	Constraints  schema.Constraints  `json:"constraints,omitempty"`
	Unsupported  bool                `json:"unsupported,omitempty"`
	Errors       []string            `json:"errors,omitempty"`
}

// Component renders and validates a single input type. Implementations must
// be pure: the same Request always yields the same output.
type Component interface {
	Tag() Tag
	// Lookup names the reference list the caller should prefetch, or
	// references.LookupNone.
	Lookup() LookupKind
	Classify(req Request) (runtimevalue.Value, error)
	Render(req Request) RenderDescriptor
	Validate(req Request) ValidationResult
}

// Factory builds a component for a tag.
type Factory func() Component
