package i18n

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranslate_Fallbacks(t *testing.T) {
	if got := Translate(nil, "en", "inputs.port", "Port", nil); got != "Port" {
		t.Fatalf("expected fallback without translator, got %q", got)
	}
	if got := Translate(nil, "en", "inputs.port", "", nil); got != "inputs.port" {
		t.Fatalf("expected key passthrough, got %q", got)
	}

	var gotErr error
	handler := func(_, key, _ string, err error) string {
		gotErr = err
		return "!" + key
	}
	if got := Translate(nil, "en", "k", "", handler); got != "!k" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestMapTranslator(t *testing.T) {
	tr := NewMapTranslator(map[string]map[string]string{
		"en": {"inputs.port": "Port", "validation.min": "must be at least %v"},
		"es": {"inputs.port": "Puerto"},
	}, "en")

	cases := []struct {
		locale, key string
		args        []any
		want        string
	}{
		{locale: "es", key: "inputs.port", want: "Puerto"},
		{locale: "es-MX", key: "inputs.port", want: "Puerto"},
		{locale: "fr", key: "inputs.port", want: "Port"},
		{locale: "es", key: "validation.min", args: []any{3}, want: "must be at least 3"},
	}
	for _, tc := range cases {
		got, err := tr.Translate(tc.locale, tc.key, tc.args...)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.locale, tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%s: got %q want %q", tc.locale, tc.key, got, tc.want)
		}
	}

	if _, err := tr.Translate("en", "nope"); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestParseCatalog(t *testing.T) {
	got, err := ParseCatalog([]byte(`
en:
  inputs:
    port: Port
    name: Service name
  validation.required: required
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]map[string]string{
		"en": {
			"inputs.port":         "Port",
			"inputs.name":         "Service name",
			"validation.required": "required",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}
