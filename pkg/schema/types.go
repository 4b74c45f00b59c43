package schema

import "github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"

// Constraints are the declarative validation rules applied to fixed values.
// Numeric bounds apply to number inputs, length bounds and patterns apply to
// the textual form of the value.
type Constraints struct {
	Required      bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern       string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Min           *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength     *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
}

// Empty reports whether no rule is declared.
func (c Constraints) Empty() bool {
	return !c.Required && c.Pattern == "" && c.Min == nil && c.Max == nil &&
		c.MinLength == nil && c.MaxLength == nil && len(c.AllowedValues) == 0
}

// Declaration describes a single input inside a form. Path is unique within a
// schema once canonicalised; Type is an input type tag understood by the
// inputs registry. Label, Placeholder and Description are opaque keys handed
// to the label source.
type Declaration struct {
	Path        string             `json:"path" yaml:"path"`
	Type        string             `json:"type" yaml:"type"`
	Label       string             `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string             `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any                `json:"default,omitempty" yaml:"default,omitempty"`
	ReadOnly    bool               `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	// AllowedKinds restricts which value kinds the field accepts. Empty means
	// every kind is accepted.
	AllowedKinds []runtimevalue.Kind `json:"allowedKinds,omitempty" yaml:"allowedKinds,omitempty"`
	Constraints  Constraints         `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Metadata     map[string]string   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Schema is the ordered set of declarations making up a form.
type Schema struct {
	ID           string        `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Declarations []Declaration `json:"inputs" yaml:"inputs"`
}

// Lookup returns the declaration bound to path, canonicalising it first.
func (s Schema) Lookup(path string) (Declaration, bool) {
	key := CanonicalPath(path)
	for _, decl := range s.Declarations {
		if CanonicalPath(decl.Path) == key {
			return decl, true
		}
	}
	return Declaration{}, false
}

// Paths returns the canonical paths in declaration order.
func (s Schema) Paths() []string {
	out := make([]string, 0, len(s.Declarations))
	for _, decl := range s.Declarations {
		out = append(out, CanonicalPath(decl.Path))
	}
	return out
}
