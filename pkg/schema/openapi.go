package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionInputType lets OpenAPI authors pin the input type tag of a
// property, for example `x-input-type: jenkins_connector`.
const ExtensionInputType = "x-input-type"

// ErrOperationNotFound is returned when the operation id is absent from the
// OpenAPI document.
var ErrOperationNotFound = errors.New("schema: operation not found")

// FromOpenAPI derives declarations from the JSON request body of an OpenAPI
// operation. Nested object properties flatten to dotted paths; properties are
// ordered by name within each object.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Schema, error) {
	if err := ctx.Err(); err != nil {
		return Schema{}, err
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return Schema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestBodySchema(op)
	if body == nil {
		return Schema{}, fmt.Errorf("schema: operation %q has no request body schema", operationID)
	}

	out := Schema{
		ID:    operationID,
		Title: strings.TrimSpace(op.Summary),
	}
	out.Declarations = collectProperties(body, "", nil)

	if err := Validate(out); err != nil {
		return Schema{}, fmt.Errorf("schema: operation %q: %w", operationID, err)
	}
	return out, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	if mt, ok := content["application/json"]; ok && mt.Schema != nil {
		return mt.Schema.Value
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func collectProperties(src *openapi3.Schema, prefix string, out []Declaration) []Declaration {
	if src == nil {
		return out
	}
	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		path := JoinPath(prefix, name)
		if hasType(prop, "object") && len(prop.Properties) > 0 {
			out = collectProperties(prop, path, out)
			continue
		}
		_, isRequired := required[name]
		out = append(out, declarationFromProperty(path, prop, isRequired))
	}
	return out
}

func declarationFromProperty(path string, prop *openapi3.Schema, required bool) Declaration {
	decl := Declaration{
		Path:        path,
		Type:        inputTypeFor(prop),
		Label:       strings.TrimSpace(prop.Title),
		Description: strings.TrimSpace(prop.Description),
		Default:     prop.Default,
		ReadOnly:    prop.ReadOnly,
		Constraints: Constraints{
			Required: required,
			Pattern:  prop.Pattern,
		},
	}
	if prop.Min != nil {
		value := *prop.Min
		decl.Constraints.Min = &value
	}
	if prop.Max != nil {
		value := *prop.Max
		decl.Constraints.Max = &value
	}
	if prop.MinLength > 0 {
		value := int(prop.MinLength)
		decl.Constraints.MinLength = &value
	}
	if prop.MaxLength != nil {
		value := int(*prop.MaxLength)
		decl.Constraints.MaxLength = &value
	}
	for _, option := range prop.Enum {
		decl.Constraints.AllowedValues = append(decl.Constraints.AllowedValues, fmt.Sprint(option))
	}
	return decl
}

func inputTypeFor(prop *openapi3.Schema) string {
	if tag := extensionString(prop.Extensions, ExtensionInputType); tag != "" {
		return tag
	}
	switch {
	case hasType(prop, "integer"), hasType(prop, "number"):
		return "number"
	case hasType(prop, "boolean"):
		return "boolean"
	}
	switch strings.ToLower(prop.Format) {
	case "email":
		return "email"
	case "uri", "url":
		return "url"
	case "textarea":
		return "text_area"
	case "password":
		return "secret"
	}
	return "string"
}

func hasType(prop *openapi3.Schema, typ string) bool {
	if prop == nil || prop.Type == nil {
		return false
	}
	for _, candidate := range prop.Type.Slice() {
		if candidate == typ {
			return true
		}
	}
	return false
}

func extensionString(extensions map[string]any, key string) string {
	raw, ok := extensions[key]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
