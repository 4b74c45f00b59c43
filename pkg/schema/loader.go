package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	ID     string    `yaml:"id"`
	Title  string    `yaml:"title"`
	Inputs yaml.Node `yaml:"inputs"`
}

// Parse decodes a YAML or JSON schema document. Inputs may be a sequence of
// declarations carrying their own `path`, or a mapping of path to
// declaration; mapping order is preserved. JSON is decoded through the YAML
// parser so object key order survives as well.
func Parse(data []byte, source string) (Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Schema{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Schema{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}

	decls, err := decodeInputs(&doc.Inputs, source)
	if err != nil {
		return Schema{}, err
	}

	out := Schema{
		ID:           strings.TrimSpace(doc.ID),
		Title:        strings.TrimSpace(doc.Title),
		Declarations: decls,
	}
	if err := Validate(out); err != nil {
		return Schema{}, fmt.Errorf("schema: %s: %w", source, err)
	}
	return out, nil
}

func decodeInputs(node *yaml.Node, source string) ([]Declaration, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.SequenceNode:
		var decls []Declaration
		if err := node.Decode(&decls); err != nil {
			return nil, fmt.Errorf("schema: decode inputs in %s: %w", source, err)
		}
		return decls, nil
	case yaml.MappingNode:
		decls := make([]Declaration, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			var decl Declaration
			if err := value.Decode(&decl); err != nil {
				return nil, fmt.Errorf("schema: decode input %q in %s: %w", key.Value, source, err)
			}
			decl.Path = key.Value
			decls = append(decls, decl)
		}
		return decls, nil
	default:
		return nil, fmt.Errorf("schema: %s: inputs must be a list or a mapping", source)
	}
}

// LoadFS walks fsys and parses every schema file (.yaml, .yml, .json, .hcl),
// keyed by schema ID (falling back to the file name without extension).
func LoadFS(fsys fs.FS) (map[string]Schema, error) {
	out := make(map[string]Schema)
	if fsys == nil {
		return out, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsSchemaFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", path, err)
		}
		parsed, err := ParseFile(data, path)
		if err != nil {
			return nil, err
		}
		id := parsed.ID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			parsed.ID = id
		}
		if _, exists := out[id]; exists {
			return nil, fmt.Errorf("schema: duplicate schema %q (file %s)", id, path)
		}
		out[id] = parsed
	}
	return out, nil
}

// ParseFile dispatches on the file extension.
func ParseFile(data []byte, path string) (Schema, error) {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(data, path)
	}
	return Parse(data, path)
}

// IsSchemaFile reports whether path has a supported schema extension.
func IsSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".hcl":
		return true
	default:
		return false
	}
}
