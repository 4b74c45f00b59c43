package runtimeinputs_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	runtimeinputs "github.com/goliatone/go-runtimeinputs"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

func TestClassify(t *testing.T) {
	got, err := runtimeinputs.Classify("<+input>", runtimevalue.PrimitiveNumber)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !got.IsRuntimeInput() {
		t.Fatalf("expected runtime input, got %v", got.Kind)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := runtimeinputs.GenerateHTML(context.Background(),
		schema.SourceFromFile("pkg/schema/testdata/deploy.yaml"),
		map[string]any{"service.port": "99999"},
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := string(out)
	if !strings.Contains(body, `data-form-id="deploy"`) {
		t.Fatalf("expected deploy form, got %s", body)
	}
	if !strings.Contains(body, `ri-field--invalid`) {
		t.Fatalf("expected validation errors to be attached, got %s", body)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(runtimeinputs.EmbeddedTemplates(), "templates/form.tpl"); err != nil {
		t.Fatalf("expected embedded form template: %v", err)
	}
}
