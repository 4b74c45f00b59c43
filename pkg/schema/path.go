package schema

import "strings"

// ParsePath splits a dot/bracket addressed path into segments. Both
// `steps[0].with.url` and `steps.0.with.url` produce the same segments.
// Quoted bracket keys (`env["HOME"]`) are unquoted.
func ParsePath(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "$.")
	if clean == "" {
		return nil
	}

	var (
		segments []string
		current  strings.Builder
	)
	flush := func() {
		if segment := strings.TrimSpace(current.String()); segment != "" {
			segments = append(segments, segment)
		}
		current.Reset()
	}

	for i := 0; i < len(clean); i++ {
		ch := clean[i]
		switch ch {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(clean[i:], ']')
			if end < 0 {
				current.WriteString(clean[i+1:])
				i = len(clean)
				continue
			}
			key := strings.TrimSpace(clean[i+1 : i+end])
			key = strings.Trim(key, `"'`)
			current.WriteString(key)
			flush()
			i += end
		default:
			current.WriteByte(ch)
		}
	}
	flush()
	return segments
}

// CanonicalPath renders path segments joined by dots.
func CanonicalPath(path string) string {
	return strings.Join(ParsePath(path), ".")
}

// JoinPath appends child to parent using dot notation.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
