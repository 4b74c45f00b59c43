// Package references holds already-fetched reference data (connector
// catalogs, delegate selectors, HTTP methods) consumed by derived input types.
package references

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LookupKind names a reference list a derived input depends on.
type LookupKind string

const (
	LookupNone             LookupKind = ""
	LookupHTTPMethod       LookupKind = "http_method"
	LookupDelegate         LookupKind = "delegate"
	LookupConnector        LookupKind = "connector"
	LookupJenkinsConnector LookupKind = "jenkins_connector"
	LookupSecret           LookupKind = "secret"
)

// Option is a single selectable reference entry.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Snapshot maps lookup kinds to their option lists.
type Snapshot map[LookupKind][]Option

// HTTPMethods is the built-in method enumeration.
func HTTPMethods() []Option {
	methods := []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS", "PATCH"}
	out := make([]Option, 0, len(methods))
	for _, method := range methods {
		out = append(out, Option{Label: method, Value: method})
	}
	return out
}

// Defaults returns a snapshot holding the built-in lists.
func Defaults() Snapshot {
	return Snapshot{LookupHTTPMethod: HTTPMethods()}
}

// Options returns the list for kind and whether the snapshot carries it.
func (s Snapshot) Options(kind LookupKind) ([]Option, bool) {
	if s == nil || kind == LookupNone {
		return nil, false
	}
	opts, ok := s[kind]
	return opts, ok
}

// Contains reports whether value is one of the options for kind.
func (s Snapshot) Contains(kind LookupKind, value string) bool {
	opts, _ := s.Options(kind)
	return ContainsValue(opts, value)
}

// Kinds returns the lookup kinds present, sorted.
func (s Snapshot) Kinds() []LookupKind {
	out := make([]LookupKind, 0, len(s))
	for kind := range s {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge returns a copy of s with the lists of other applied on top. Lists are
// replaced, not concatenated.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	out := make(Snapshot, len(s)+len(other))
	for kind, opts := range s {
		out[kind] = append([]Option(nil), opts...)
	}
	for kind, opts := range other {
		out[kind] = append([]Option(nil), opts...)
	}
	return out
}

// ContainsValue reports whether value matches an option value exactly.
func ContainsValue(opts []Option, value string) bool {
	for _, opt := range opts {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values returns the option values in order.
func Values(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, opt := range opts {
		out = append(out, opt.Value)
	}
	return out
}

// Parse decodes a YAML or JSON snapshot. Each list entry is either a plain
// string (label == value) or a {label, value} mapping:
//
//	connector:
//	  - {label: Production Jenkins, value: account.jenkins_prod}
//	http_method: [GET, POST]
func Parse(data []byte) (Snapshot, error) {
	var raw map[string][]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("references: parse snapshot: %w", err)
	}
	out := make(Snapshot, len(raw))
	for kind, nodes := range raw {
		opts := make([]Option, 0, len(nodes))
		for idx := range nodes {
			opt, err := decodeOption(&nodes[idx])
			if err != nil {
				return nil, fmt.Errorf("references: %s entry %d: %w", kind, idx, err)
			}
			opts = append(opts, opt)
		}
		out[LookupKind(strings.TrimSpace(kind))] = opts
	}
	return out, nil
}

func decodeOption(node *yaml.Node) (Option, error) {
	if node.Kind == yaml.ScalarNode {
		return Option{Label: node.Value, Value: node.Value}, nil
	}
	var opt Option
	if err := node.Decode(&opt); err != nil {
		return Option{}, err
	}
	if strings.TrimSpace(opt.Value) == "" {
		return Option{}, fmt.Errorf("option value is required")
	}
	if opt.Label == "" {
		opt.Label = opt.Value
	}
	return opt, nil
}
