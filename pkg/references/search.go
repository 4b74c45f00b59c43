package references

import (
	"sort"
	"strings"
)

// Search filters opts by a case-insensitive substring of label or value.
// Prefix matches sort first; an empty query returns the list unchanged.
// limit <= 0 means no limit.
func Search(opts []Option, query string, limit int) []Option {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return truncate(append([]Option(nil), opts...), limit)
	}

	type match struct {
		opt      Option
		isPrefix bool
		index    int
	}
	matches := make([]match, 0, len(opts))
	for idx, opt := range opts {
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		if !strings.Contains(label, query) && !strings.Contains(value, query) {
			continue
		}
		matches = append(matches, match{
			opt:      opt,
			isPrefix: strings.HasPrefix(label, query) || strings.HasPrefix(value, query),
			index:    idx,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].index < matches[j].index
	})

	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.opt)
	}
	return truncate(out, limit)
}

func truncate(opts []Option, limit int) []Option {
	if limit > 0 && len(opts) > limit {
		return opts[:limit]
	}
	return opts
}
