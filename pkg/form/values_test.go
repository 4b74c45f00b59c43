package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValues_Expand(t *testing.T) {
	values := Values{
		"service.name":    "api",
		"service.port":    float64(8080),
		"steps.0.name":    "build",
		"steps.1.name":    "deploy",
		"steps.1.timeout": "<+input>",
		"matrix.0.0":      "linux",
		"notify":          true,
	}

	got, err := values.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := map[string]any{
		"service": map[string]any{"name": "api", "port": float64(8080)},
		"steps": []any{
			map[string]any{"name": "build"},
			map[string]any{"name": "deploy", "timeout": "<+input>"},
		},
		"matrix": []any{[]any{"linux"}},
		"notify": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expanded mismatch (-want +got):\n%s", diff)
	}
}

func TestValues_ExpandConflict(t *testing.T) {
	values := Values{"service": "api", "service.name": "api"}
	if _, err := values.Expand(); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestValues_ExpandRejectsOversizedIndex(t *testing.T) {
	for _, path := range []string{
		"steps.9223372036854775806.name",
		"steps.100000000",
		"steps.1025",
	} {
		values := Values{path: "x"}
		if _, err := values.Expand(); err == nil {
			t.Fatalf("%s: expected index limit error", path)
		}
	}

	got, err := Values{"steps.3": "x"}.Expand()
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := map[string]any{"steps": []any{nil, nil, nil, "x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expanded mismatch (-want +got):\n%s", diff)
	}
}
