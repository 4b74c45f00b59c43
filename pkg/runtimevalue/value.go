package runtimevalue

import "strings"

// Kind identifies which variant of Value is active.
type Kind string

const (
	KindFixed        Kind = "fixed"
	KindRuntimeInput Kind = "runtime"
	KindExpression   Kind = "expression"
)

// Kinds lists every value kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindFixed, KindRuntimeInput, KindExpression}
}

// Primitive is the value type a Fixed value is coerced to.
type Primitive string

const (
	PrimitiveString  Primitive = "string"
	PrimitiveNumber  Primitive = "number"
	PrimitiveBoolean Primitive = "boolean"
)

// Value is the classified form of a raw input value. Exactly one of the
// variants is active, reported by Kind.
type Value struct {
	Kind Kind `json:"kind"`
	// Raw preserves the textual form of the original value.
	Raw string `json:"raw"`
	// Fixed holds the coerced literal (string, float64 or bool) for KindFixed.
	// It is nil when the raw value was empty.
	Fixed any `json:"fixed,omitempty"`
	// Default and AllowedValues are populated from runtime input modifiers.
	Default       string   `json:"default,omitempty"`
	HasDefault    bool     `json:"hasDefault,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
}

// Fixed builds a fixed value without going through classification.
func Fixed(raw string, literal any) Value {
	return Value{Kind: KindFixed, Raw: raw, Fixed: literal}
}

// IsFixed reports whether the value is a fixed literal.
func (v Value) IsFixed() bool { return v.Kind == KindFixed }

// IsRuntimeInput reports whether the value is a runtime input placeholder.
func (v Value) IsRuntimeInput() bool { return v.Kind == KindRuntimeInput }

// IsExpression reports whether the value is an expression.
func (v Value) IsExpression() bool { return v.Kind == KindExpression }

// Empty reports whether a fixed value carries no content.
func (v Value) Empty() bool {
	return v.Kind == KindFixed && v.Fixed == nil && strings.TrimSpace(v.Raw) == ""
}

// Literal returns the value handed to submit collaborators: the coerced
// literal for fixed values and the raw placeholder or expression otherwise.
func (v Value) Literal() any {
	if v.Kind == KindFixed {
		if v.Fixed == nil {
			return v.Raw
		}
		return v.Fixed
	}
	return v.Raw
}

// String returns the raw textual form.
func (v Value) String() string {
	return v.Raw
}
