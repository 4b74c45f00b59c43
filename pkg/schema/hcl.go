package schema

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

// hclSchemaFile is the top-level structure of an HCL schema document:
//
//	id    = "deploy"
//	title = "Deploy service"
//
//	input "service.port" {
//	  type     = "number"
//	  label    = "Port"
//	  required = true
//	  min      = 1
//	  max      = 65535
//	  default  = 8080
//	}
type hclSchemaFile struct {
	ID     string      `hcl:"id,optional"`
	Title  string      `hcl:"title,optional"`
	Inputs []*hclInput `hcl:"input,block"`
}

type hclInput struct {
	Path          string            `hcl:"path,label"`
	Type          string            `hcl:"type"`
	Label         string            `hcl:"label,optional"`
	Placeholder   string            `hcl:"placeholder,optional"`
	Description   string            `hcl:"description,optional"`
	Default       cty.Value         `hcl:"default,optional"`
	ReadOnly      bool              `hcl:"read_only,optional"`
	AllowedKinds  []string          `hcl:"allowed_kinds,optional"`
	Required      bool              `hcl:"required,optional"`
	Pattern       string            `hcl:"pattern,optional"`
	Min           *float64          `hcl:"min,optional"`
	Max           *float64          `hcl:"max,optional"`
	MinLength     *int              `hcl:"min_length,optional"`
	MaxLength     *int              `hcl:"max_length,optional"`
	AllowedValues []string          `hcl:"allowed_values,optional"`
	Metadata      map[string]string `hcl:"metadata,optional"`
}

// ParseHCL decodes `input` blocks from an HCL document. Blocks keep their
// source order.
func ParseHCL(data []byte, source string) (Schema, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return Schema{}, fmt.Errorf("schema: parse HCL file %s: %w", source, diags)
	}

	var parsed hclSchemaFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return Schema{}, fmt.Errorf("schema: decode HCL file %s: %w", source, diags)
	}

	out := Schema{
		ID:           strings.TrimSpace(parsed.ID),
		Title:        strings.TrimSpace(parsed.Title),
		Declarations: make([]Declaration, 0, len(parsed.Inputs)),
	}
	for _, input := range parsed.Inputs {
		def, err := ctyToNative(input.Default)
		if err != nil {
			return Schema{}, fmt.Errorf("schema: %s: input %q default: %w", source, input.Path, err)
		}
		decl := Declaration{
			Path:        input.Path,
			Type:        input.Type,
			Label:       input.Label,
			Placeholder: input.Placeholder,
			Description: input.Description,
			Default:     def,
			ReadOnly:    input.ReadOnly,
			Metadata:    input.Metadata,
			Constraints: Constraints{
				Required:      input.Required,
				Pattern:       input.Pattern,
				Min:           input.Min,
				Max:           input.Max,
				MinLength:     input.MinLength,
				MaxLength:     input.MaxLength,
				AllowedValues: input.AllowedValues,
			},
		}
		for _, kind := range input.AllowedKinds {
			decl.AllowedKinds = append(decl.AllowedKinds, runtimevalue.Kind(kind))
		}
		out.Declarations = append(out.Declarations, decl)
	}

	if err := Validate(out); err != nil {
		return Schema{}, fmt.Errorf("schema: %s: %w", source, err)
	}
	return out, nil
}

// ctyToNative converts a primitive cty default into a Go value. Absent or null
// defaults map to nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case cty.Bool:
		return v.True(), nil
	default:
		return nil, fmt.Errorf("unsupported default type %s", v.Type().FriendlyName())
	}
}
