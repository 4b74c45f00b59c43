package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

const deploySchema = "../../pkg/schema/testdata/deploy.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFlattenValues(t *testing.T) {
	got := make(map[string]any)
	flattenValues("", map[string]any{
		"service":  map[string]any{"name": "api", "port": 8080},
		"steps":    []any{map[string]any{"timeout": "10m"}},
		"hosts":    []any{"a", "b"},
		"flat.key": "<+input>",
	}, got)

	want := map[string]any{
		"service.name":    "api",
		"service.port":    8080,
		"steps.0.timeout": "10m",
		"hosts":           "a,b",
		"flat.key":        "<+input>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flattened values mismatch (-want +got):\n%s", diff)
	}
}

func TestValueFlagsLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "values.yaml")
	if err := os.WriteFile(file, []byte("service:\n  name: api\n  port: 80\n"), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}

	v := valueFlags{file: file, set: []string{"service[\"port\"]=<+input>", "notes=a=b"}}
	got, err := v.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]any{"service.name": "api", "service.port": "<+input>", "notes": "a=b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	bad := valueFlags{set: []string{"missing-equals"}}
	if _, err := bad.load(); err == nil {
		t.Fatalf("expected error for malformed --set")
	}
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	for _, want := range []string{"TAG", "http_method", "delegate_selector", "jenkins_connector"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", deploySchema, "--set", "service.port=0")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(out, "error: service.name: required") {
		t.Fatalf("expected required error in summary:\n%s", out)
	}

	if _, err := execute(t, "validate", deploySchema, "--set", "service.name=api", "--set", "service.port=<+input>"); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestRenderCommandJSON(t *testing.T) {
	out, err := execute(t, "render", deploySchema, "--renderer", "json", "--set", "service.name=<+pipeline.name>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"valueKind": "expression"`) {
		t.Fatalf("expected expression value kind:\n%s", out)
	}
}

func TestRenderCommandTheme(t *testing.T) {
	out, err := execute(t, "render", deploySchema, "--theme", "acme", "--token", "brand=#0af", "--asset", "stylesheet=acme.css", "--asset-prefix", "/static")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`data-theme="acme"`, `--brand: #0af;`, `href="/static/acme.css"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSentinelFromEnvironment(t *testing.T) {
	t.Setenv(envSentinel, "${input}")
	out, err := execute(t, "render", deploySchema, "--renderer", "json", "--set", "service.name=${input}")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"valueKind": "runtime"`) {
		t.Fatalf("expected runtime value kind:\n%s", out)
	}
}

func TestServeReferencesHandler(t *testing.T) {
	a := &app{
		logger:     zap.NewNop(),
		references: []string{"../../pkg/orchestrator/testdata/references.yaml"},
		timeout:    5 * time.Second,
	}
	handler, err := a.referencesHandler(&serveOptions{route: "/refs", defaultLimit: 10, maxLimit: 20})
	if err != nil {
		t.Fatalf("references handler: %v", err)
	}

	get := func(target string) (int, map[string]any) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		var body map[string]any
		if rec.Code == http.StatusOK {
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("%s: decode: %v", target, err)
			}
		}
		return rec.Code, body
	}

	code, body := get("/refs/connector?q=stage")
	if code != http.StatusOK {
		t.Fatalf("connector: status %d", code)
	}
	data, _ := body["data"].([]any)
	if len(data) != 1 || !strings.Contains(toJSON(t, data), "account.jenkins_stage") {
		t.Fatalf("expected the stage connector only, got %v", body)
	}

	if code, body = get("/refs/http_method"); code != http.StatusOK {
		t.Fatalf("http_method: status %d", code)
	}
	if data, _ := body["data"].([]any); len(data) != 7 {
		t.Fatalf("expected built-in http methods, got %v", body)
	}

	if code, _ = get("/refs/unknown"); code != http.StatusNotFound {
		t.Fatalf("unknown kind: expected 404, got %d", code)
	}
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}
