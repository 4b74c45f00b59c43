package inputs

import (
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

type unsupported struct {
	tag Tag
}

// Unsupported returns the placeholder component used for unknown tags. It
// renders a read-only placeholder, never reports issues and passes the raw
// value through as a string.
func Unsupported(tag Tag) Component {
	return unsupported{tag: tag}
}

// IsUnsupported reports whether c is the placeholder component.
func IsUnsupported(c Component) bool {
	_, ok := c.(unsupported)
	return ok
}

func (u unsupported) Tag() Tag { return u.tag }

func (u unsupported) Lookup() LookupKind { return references.LookupNone }

// Classify keeps the raw text as a fixed string, even when it looks like a
// runtime input or an expression.
func (u unsupported) Classify(req Request) (runtimevalue.Value, error) {
	value, _ := req.Env.resolver().Classify(req.Raw(), runtimevalue.PrimitiveString)
	if value.Empty() {
		return value, nil
	}
	return runtimevalue.Fixed(value.Raw, value.Raw), nil
}

func (u unsupported) Render(req Request) RenderDescriptor {
	value, _ := u.Classify(req)
	decl := req.Declaration
	return RenderDescriptor{
		Path:         req.Path(),
		Tag:          u.tag,
		Kind:         FieldPlaceholder,
		Label:        req.Env.translate(decl.Label, decl.Label),
		Description:  req.Env.translate("inputs.unsupported", "unsupported field type "+string(u.tag), u.tag),
		Value:        value.Literal(),
		Raw:          value.Raw,
		ValueKind:    value.Kind,
		AllowedKinds: req.AllowedKinds(),
		ReadOnly:     true,
		Unsupported:  true,
	}
}

func (u unsupported) Validate(req Request) ValidationResult {
	return ValidationResult{Path: req.Path()}
}
