package render

import (
	"strings"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// FieldSubset narrows the rendered fields. A field is kept when it matches
// any non-empty filter; an empty subset keeps everything.
type FieldSubset struct {
	// Paths keeps fields equal to or nested under a path prefix.
	Paths []string
	// Tags keeps fields of the given input types.
	Tags []string
	// ValueKinds keeps fields whose current value is of the given kind, for
	// example only the runtime inputs left to fill at execution time.
	ValueKinds []string
}

// Empty reports whether no filter is set.
func (s FieldSubset) Empty() bool {
	return len(normaliseTokens(s.Paths)) == 0 &&
		len(normaliseTokens(s.Tags)) == 0 &&
		len(normaliseTokens(s.ValueKinds)) == 0
}

// ApplySubset removes fields that do not match subset.
func ApplySubset(form *Form, subset FieldSubset) {
	if form == nil || subset.Empty() {
		return
	}

	paths := normaliseTokens(subset.Paths)
	for i, path := range paths {
		paths[i] = schema.CanonicalPath(path)
	}
	tags := normaliseTokens(subset.Tags)
	kinds := normaliseTokens(subset.ValueKinds)

	filtered := make([]inputs.RenderDescriptor, 0, len(form.Fields))
	for _, field := range form.Fields {
		if matchesPath(field.Path, paths) || contains(tags, string(field.Tag)) || contains(kinds, string(field.ValueKind)) {
			filtered = append(filtered, field)
		}
	}
	form.Fields = filtered
}

func matchesPath(path string, prefixes []string) bool {
	lowered := strings.ToLower(path)
	for _, prefix := range prefixes {
		if lowered == prefix || strings.HasPrefix(lowered, prefix+".") {
			return true
		}
	}
	return false
}

func contains(tokens []string, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, token := range tokens {
		if token == value {
			return true
		}
	}
	return false
}

// normaliseTokens splits comma separated entries, lowercases and
// de-duplicates them.
func normaliseTokens(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			token := strings.ToLower(strings.TrimSpace(part))
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}
