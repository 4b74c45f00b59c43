package form

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// Values is the resolved value map handed to a Submitter: canonical path to
// the fixed literal, the runtime input marker or the expression string.
type Values map[string]any

// Paths returns the keys sorted.
func (v Values) Paths() []string {
	out := make([]string, 0, len(v))
	for path := range v {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Expand turns dotted paths into nested maps. Numeric segments index into
// slices, so `steps.0.name` becomes {"steps": [{"name": ...}]}.
func (v Values) Expand() (map[string]any, error) {
	root := make(map[string]any, len(v))
	for _, path := range v.Paths() {
		segments := schema.ParsePath(path)
		if len(segments) == 0 {
			continue
		}
		next, err := insert(root, segments, v[path], path)
		if err != nil {
			return nil, err
		}
		root = next.(map[string]any)
	}
	return root, nil
}

// maxIndexGap bounds how far past the current list end a numeric segment may
// index, so a declared path cannot force an arbitrarily large allocation.
const maxIndexGap = 1024

func insert(node any, segments []string, value any, path string) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 {
		list, ok := node.([]any)
		if node != nil && !ok {
			return nil, fmt.Errorf("form: %s: segment %q indexes a non-list value", path, segment)
		}
		if idx > len(list)+maxIndexGap {
			return nil, fmt.Errorf("form: %s: index %d exceeds the list size limit", path, idx)
		}
		if len(list) <= idx {
			list = append(list, make([]any, idx+1-len(list))...)
		}
		if last {
			list[idx] = value
			return list, nil
		}
		child, err := insert(list[idx], segments[1:], value, path)
		if err != nil {
			return nil, err
		}
		list[idx] = child
		return list, nil
	}

	obj, ok := node.(map[string]any)
	if node != nil && !ok {
		return nil, fmt.Errorf("form: %s: segment %q descends into a scalar", path, segment)
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	if last {
		if _, isMap := obj[segment].(map[string]any); isMap {
			return nil, fmt.Errorf("form: %s: path overlaps a nested value", path)
		}
		obj[segment] = value
		return obj, nil
	}
	child, err := insert(obj[segment], segments[1:], value, path)
	if err != nil {
		return nil, err
	}
	obj[segment] = child
	return obj, nil
}
