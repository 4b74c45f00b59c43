package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// valueFlags collects prefill values from a file and repeated --set flags.
type valueFlags struct {
	file string
	set  []string
}

func (v *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&v.file, "values", "f", "", "YAML or JSON file with values, nested or keyed by path")
	cmd.Flags().StringArrayVar(&v.set, "set", nil, "Set a value as path=value (repeatable, applied after --values)")
}

func (v *valueFlags) load() (map[string]any, error) {
	out := make(map[string]any)
	if v.file != "" {
		data, err := os.ReadFile(v.file)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse values %s: %w", v.file, err)
		}
		flattenValues("", doc, out)
	}
	for _, entry := range v.set {
		path, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected path=value", entry)
		}
		out[schema.CanonicalPath(path)] = value
	}
	return out, nil
}

// flattenValues turns nested documents into canonical paths. Scalars and
// lists of scalars are kept as leaves.
func flattenValues(prefix string, in any, out map[string]any) {
	switch typed := in.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			flattenValues(schema.JoinPath(prefix, key), typed[key], out)
		}
	case []any:
		if scalarList(typed) {
			parts := make([]string, 0, len(typed))
			for _, item := range typed {
				parts = append(parts, fmt.Sprint(item))
			}
			out[schema.CanonicalPath(prefix)] = strings.Join(parts, ",")
			return
		}
		for idx, item := range typed {
			flattenValues(schema.JoinPath(prefix, strconv.Itoa(idx)), item, out)
		}
	default:
		if prefix != "" {
			out[schema.CanonicalPath(prefix)] = typed
		}
	}
}

func scalarList(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}
