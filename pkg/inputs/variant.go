package inputs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

// FormatCheck validates the textual form of a non-empty fixed value and
// returns a message when it is rejected.
type FormatCheck func(text string) (message string, ok bool)

// Variant is a table-driven Component. Derived variants set Lookup; their
// fixed values must be members of the reference list supplied through
// Env.References, falling back to Options when the snapshot lacks the list.
type Variant struct {
	TypeTag   Tag
	Primitive runtimevalue.Primitive
	Field     FieldKind
	Reference LookupKind
	// Options is the static list used when the snapshot has no entry for
	// Reference.
	Options []Option
	// Multiple splits fixed values on commas; every part is checked.
	Multiple bool
	Format   FormatCheck
}

var _ Component = Variant{}

// Factory returns a factory producing this variant.
func (v Variant) Factory() Factory {
	return func() Component { return v }
}

// Tag implements Component.
func (v Variant) Tag() Tag { return v.TypeTag }

// Lookup implements Component.
func (v Variant) Lookup() LookupKind { return v.Reference }

// Classify implements Component.
func (v Variant) Classify(req Request) (runtimevalue.Value, error) {
	return req.Env.resolver().Classify(req.Raw(), v.primitive())
}

// Render implements Component.
func (v Variant) Render(req Request) RenderDescriptor {
	decl := req.Declaration
	value, _ := v.Classify(req)

	desc := RenderDescriptor{
		Path:         req.Path(),
		Tag:          v.TypeTag,
		Kind:         v.Field,
		Label:        req.Env.translate(decl.Label, decl.Label),
		Placeholder:  req.Env.translate(decl.Placeholder, decl.Placeholder),
		Description:  req.Env.translate(decl.Description, decl.Description),
		Value:        value.Literal(),
		Raw:          value.Raw,
		ValueKind:    value.Kind,
		AllowedKinds: req.AllowedKinds(),
		ReadOnly:     req.ReadOnly || decl.ReadOnly,
		Required:     decl.Constraints.Required,
		Lookup:       v.Reference,
		Constraints:  decl.Constraints,
	}
	if value.Empty() {
		desc.Value = nil
	}
	if opts := v.options(req.Env); len(opts) > 0 {
		desc.Options = opts
	} else if len(decl.Constraints.AllowedValues) > 0 {
		desc.Options = optionsFromValues(decl.Constraints.AllowedValues)
	}
	return desc
}

// Validate implements Component. Constraints and reference checks only apply
// to fixed values; runtime inputs and expressions resolve later.
func (v Variant) Validate(req Request) ValidationResult {
	result := ValidationResult{Path: req.Path()}

	value, err := v.Classify(req)
	if err != nil {
		result.add(classifyIssue(req.Env, err))
		return result
	}

	if !value.Empty() && !kindAllowed(value.Kind, req.AllowedKinds()) {
		result.add(Issue{
			Kind:    IssueValueKind,
			Message: req.Env.translate("validation.valueKind", fmt.Sprintf("%s values are not allowed", value.Kind), value.Kind),
		})
		return result
	}
	if !value.IsFixed() {
		return result
	}

	checkConstraints(req.Env, req.Declaration.Constraints, value, v.Multiple, &result)
	if value.Empty() || !result.Valid() {
		return result
	}

	parts := v.parts(value.Raw)
	if v.Format != nil {
		for _, part := range parts {
			if msg, ok := v.Format(part); !ok {
				result.add(Issue{Kind: IssueConstraint, Rule: RuleFormat, Message: req.Env.translate("validation.format."+string(v.TypeTag), msg)})
				break
			}
		}
	}
	if opts := v.options(req.Env); len(opts) > 0 {
		for _, part := range parts {
			if !references.ContainsValue(opts, part) {
				result.add(Issue{
					Kind:    IssueConstraint,
					Rule:    RuleReference,
					Message: req.Env.translate("validation.reference", fmt.Sprintf("%q is not one of: %s", part, strings.Join(references.Values(opts), ", ")), part),
				})
			}
		}
	}
	return result
}

func (v Variant) primitive() runtimevalue.Primitive {
	if v.Primitive == "" {
		return runtimevalue.PrimitiveString
	}
	return v.Primitive
}

func (v Variant) options(env Env) []Option {
	if v.Reference == references.LookupNone {
		return v.Options
	}
	if opts, ok := env.References.Options(v.Reference); ok {
		return opts
	}
	return v.Options
}

func (v Variant) parts(raw string) []string {
	if !v.Multiple {
		return []string{strings.TrimSpace(raw)}
	}
	return splitList(raw)
}

func classifyIssue(env Env, err error) Issue {
	switch {
	case errors.Is(err, runtimevalue.ErrTypeMismatch):
		var mismatch *runtimevalue.TypeMismatchError
		msg := err.Error()
		if errors.As(err, &mismatch) {
			msg = fmt.Sprintf("%q is not a valid %s", mismatch.Raw, mismatch.Primitive)
		}
		return Issue{Kind: IssueTypeMismatch, Message: env.translate("validation.typeMismatch", msg)}
	case errors.Is(err, runtimevalue.ErrMalformedRuntimeInput):
		var malformed *runtimevalue.MalformedRuntimeInputError
		msg := err.Error()
		if errors.As(err, &malformed) {
			msg = "malformed runtime input: " + malformed.Reason
		}
		return Issue{Kind: IssueMalformedRuntimeVal, Message: env.translate("validation.malformedRuntimeInput", msg)}
	default:
		return Issue{Kind: IssueTypeMismatch, Message: err.Error()}
	}
}

func kindAllowed(kind runtimevalue.Kind, allowed []runtimevalue.Kind) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if candidate == kind {
			return true
		}
	}
	return false
}

func optionsFromValues(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, value := range values {
		out = append(out, Option{Label: value, Value: value})
	}
	return out
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
