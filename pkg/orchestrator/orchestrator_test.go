package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

type captureRenderer struct {
	form render.Form
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }
func (r *captureRenderer) Render(_ context.Context, f render.Form) ([]byte, error) {
	r.form = f
	return []byte(f.ID), nil
}

func captureRegistry(t *testing.T, renderer render.Renderer) *render.Registry {
	t.Helper()
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return registry
}

func TestGenerateLoadsSchemaAndReferences(t *testing.T) {
	renderer := &captureRenderer{}
	orch := New(
		WithRegistry(captureRegistry(t, renderer)),
		WithDefaultRenderer("capture"),
		WithReferencesSource(schema.SourceFromFile("testdata/references.yaml")),
	)

	out, err := orch.Generate(context.Background(), Request{
		Source:   schema.SourceFromFile("testdata/release.yaml"),
		Values:   map[string]any{"build.connector": "account.jenkins_dev"},
		Validate: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "release" {
		t.Fatalf("unexpected output %q", out)
	}

	got := renderer.form
	if got.Title != "Release" || len(got.Fields) != 3 {
		t.Fatalf("unexpected form: %+v", got)
	}
	connector, ok := got.Field("build.connector")
	if !ok {
		t.Fatalf("expected build.connector field")
	}
	wantOptions := []string{"account.jenkins_prod", "account.jenkins_stage"}
	var gotOptions []string
	for _, opt := range connector.Options {
		gotOptions = append(gotOptions, opt.Value)
	}
	if diff := cmp.Diff(wantOptions, gotOptions); diff != "" {
		t.Fatalf("connector options mismatch (-want +got):\n%s", diff)
	}
	if len(connector.Errors) != 1 {
		t.Fatalf("expected reference error for unknown connector, got %v", connector.Errors)
	}
	name, _ := got.Field("service.name")
	if diff := cmp.Diff([]string{"required"}, name.Errors); diff != "" {
		t.Fatalf("service.name errors mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDefaultRenderers(t *testing.T) {
	orch := New()
	for _, name := range []string{"html", "json", "text"} {
		if !orch.Renderers().Has(name) {
			t.Fatalf("expected default renderer %q", name)
		}
	}

	s := schema.Schema{ID: "inline", Declarations: []schema.Declaration{{Path: "service.name", Type: "string"}}}
	out, err := orch.Generate(context.Background(), Request{Schema: &s, Renderer: "json"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `"path": "service.name"`) {
		t.Fatalf("expected json document, got %s", out)
	}

	out, err = orch.Generate(context.Background(), Request{Schema: &s})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `data-form-id="inline"`) {
		t.Fatalf("expected html by default, got %s", out)
	}
}

func TestGenerateErrors(t *testing.T) {
	orch := New()
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error without source or schema")
	}
	s := schema.Schema{ID: "inline", Declarations: []schema.Declaration{{Path: "service.name", Type: "string"}}}
	if _, err := orch.Generate(context.Background(), Request{Schema: &s, Renderer: "pdf"}); err == nil || !strings.Contains(err.Error(), `renderer "pdf"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
	if _, err := orch.Generate(context.Background(), Request{Source: schema.SourceFromFile("testdata/missing.yaml")}); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestSubmitUsesSubmitter(t *testing.T) {
	var got form.Values
	orch := New(WithSubmitter(form.SubmitterFunc(func(_ context.Context, values form.Values) error {
		got = values
		return nil
	})))

	report, err := orch.Submit(context.Background(), Request{
		Source: schema.SourceFromFile("testdata/release.yaml"),
		Values: map[string]any{
			"service.name":    "api",
			"build.connector": "<+input>",
			"build.method":    "POST",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected valid report, got %v", report.Errors)
	}
	want := form.Values{"service.name": "api", "build.connector": "<+input>", "build.method": "POST"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	_, err = orch.Submit(context.Background(), Request{Source: schema.SourceFromFile("testdata/release.yaml")})
	if !errors.Is(err, form.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSchemaCache(t *testing.T) {
	orch := New(WithSchemaCache(4))
	src := schema.SourceFromFile("testdata/release.yaml")
	if _, err := orch.Coordinator(context.Background(), Request{Source: src}); err != nil {
		t.Fatalf("coordinator: %v", err)
	}
	if _, ok := orch.cache.Get("file:testdata/release.yaml"); !ok {
		t.Fatalf("expected schema to be cached")
	}
}
