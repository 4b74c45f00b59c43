package schema

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

func ptr[T any](v T) *T { return &v }

func TestParse_MappingPreservesOrder(t *testing.T) {
	data, err := os.ReadFile("testdata/deploy.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := Parse(data, "deploy.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Schema{
		ID:    "deploy",
		Title: "Deploy service",
		Declarations: []Declaration{
			{
				Path:  "service.name",
				Type:  "string",
				Label: "inputs.service.name",
				Constraints: Constraints{
					Required: true,
					Pattern:  "^[a-z][a-z0-9-]*$",
				},
			},
			{
				Path:    "service.port",
				Type:    "number",
				Label:   "inputs.service.port",
				Default: 8080,
				Constraints: Constraints{
					Min: ptr(1.0),
					Max: ptr(65535.0),
				},
			},
			{
				Path:         "healthcheck.method",
				Type:         "http_method",
				AllowedKinds: []runtimevalue.Kind{runtimevalue.KindFixed, runtimevalue.KindRuntimeInput},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONKeepsKeyOrder(t *testing.T) {
	raw := []byte(`{"inputs": {"zeta": {"type": "string"}, "alpha": {"type": "number"}}}`)
	got, err := Parse(raw, "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, got.Paths()); diff != "" {
		t.Fatalf("path order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SequenceForm(t *testing.T) {
	raw := []byte(`
inputs:
  - path: steps[0].url
    type: url
  - path: steps[0].method
    type: http_method
`)
	got, err := Parse(raw, "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"steps.0.url", "steps.0.method"}, got.Paths()); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if decl, ok := got.Lookup("steps.0.url"); !ok || decl.Type != "url" {
		t.Fatalf("expected lookup by canonical path, got %#v (ok=%v)", decl, ok)
	}
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	raw := []byte(`
inputs:
  - path: a
    type: string
  - path: a
    type: string
  - path: b
  - path: c
    type: number
    constraints:
      min: 10
      max: 1
`)
	_, err := Parse(raw, "broken.yaml")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("expected duplicate path error, got %v", err)
	}
	for _, fragment := range []string{`input "b": type is required`, `input "c": min 10 exceeds max 1`} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestParse_EmptyAndInvalid(t *testing.T) {
	if _, err := Parse([]byte("  "), "empty.yaml"); err == nil {
		t.Fatal("expected error for empty file")
	}
	if _, err := Parse([]byte("inputs: 3"), "scalar.yaml"); err == nil {
		t.Fatal("expected error for scalar inputs")
	}
	if _, err := Parse([]byte("title: nothing"), "none.yaml"); !errors.Is(err, ErrEmptySchema) {
		t.Fatalf("expected ErrEmptySchema, got %v", err)
	}
}

func TestValidate_InvalidPattern(t *testing.T) {
	err := Validate(Schema{Declarations: []Declaration{{
		Path:        "a",
		Type:        "string",
		Constraints: Constraints{Pattern: "("},
	}}})
	if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	yamlData, err := os.ReadFile("testdata/deploy.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	hclData, err := os.ReadFile("testdata/deploy.hcl")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fsys := fstest.MapFS{
		"schemas/deploy.yaml":  {Data: yamlData},
		"schemas/deploy.hcl":   {Data: hclData},
		"schemas/rollback.yml": {Data: []byte("inputs:\n  version:\n    type: string\n")},
		"schemas/README.md":    {Data: []byte("ignored")},
	}

	got, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	for _, id := range []string{"deploy", "deploy-hcl", "rollback"} {
		if _, ok := got[id]; !ok {
			t.Fatalf("expected schema %q, got %v", id, keys(got))
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 schemas, got %d", len(got))
	}
}

func keys(m map[string]Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
