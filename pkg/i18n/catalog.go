package i18n

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseCatalog decodes a YAML or JSON catalog shaped as
// `locale: {key: message}`. Nested keys are flattened with dots, so
//
//	en:
//	  inputs:
//	    port: Port
//
// yields the key `inputs.port`.
func ParseCatalog(data []byte) (map[string]map[string]string, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}
	out := make(map[string]map[string]string, len(raw))
	for locale, entries := range raw {
		flat := make(map[string]string)
		flatten("", entries, flat)
		out[strings.TrimSpace(locale)] = flat
	}
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch typed := value.(type) {
		case map[string]any:
			flatten(full, typed, out)
		case nil:
		default:
			out[full] = fmt.Sprint(typed)
		}
	}
}
