package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-runtimeinputs/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	paths := []string{"service.name", "service.port", "steps.0.name", "notify"}

	payload := map[string][]string{
		"/body/service/name":         {"Name is taken", " Name is taken "},
		"inputs.service.port":        {"Port in use"},
		"$.steps[0].name":            {"Step name invalid"},
		"notify.0":                   {"Notify must be a bool"},
		"non_field_errors":           {"Pipeline is locked"},
		"request/body/unknown-field": {"Unexpected field"},
		"":                           {"Unscoped error"},
		"service.port.extra":         {"  "},
	}

	mapped := render.MapErrorPayload(paths, payload)

	wantFields := map[string][]string{
		"service.name": {"Name is taken"},
		"service.port": {"Port in use"},
		"steps.0.name": {"Step name invalid"},
		"notify":       {"Notify must be a bool"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantFields, mapped.FieldErrors()); diff != "" {
		t.Fatalf("FieldErrors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Pipeline is locked", "Unexpected field", "Unscoped error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	if got := render.MapErrorPayload([]string{"a"}, nil); !got.Empty() {
		t.Fatalf("expected empty mapping, got %#v", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
