package references

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	got, err := Parse([]byte(`
connector:
  - {label: Production Jenkins, value: account.jenkins_prod}
  - account.jenkins_dev
http_method: [GET, POST]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Snapshot{
		LookupConnector: {
			{Label: "Production Jenkins", Value: "account.jenkins_prod"},
			{Label: "account.jenkins_dev", Value: "account.jenkins_dev"},
		},
		LookupHTTPMethod: {
			{Label: "GET", Value: "GET"},
			{Label: "POST", Value: "POST"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RejectsMissingValue(t *testing.T) {
	if _, err := Parse([]byte("connector:\n  - {label: nothing}\n")); err == nil {
		t.Fatal("expected error for option without value")
	}
}

func TestSnapshot_MergeAndContains(t *testing.T) {
	base := Defaults()
	merged := base.Merge(Snapshot{LookupDelegate: {{Label: "linux", Value: "linux"}}})

	if !merged.Contains(LookupHTTPMethod, "PATCH") {
		t.Fatal("expected built-in methods to survive merge")
	}
	if merged.Contains(LookupHTTPMethod, "TRACE") {
		t.Fatal("TRACE is not a built-in method")
	}
	if !merged.Contains(LookupDelegate, "linux") {
		t.Fatal("expected merged delegate list")
	}
	if _, ok := base.Options(LookupDelegate); ok {
		t.Fatal("merge must not mutate the receiver")
	}
	if diff := cmp.Diff([]LookupKind{LookupDelegate, LookupHTTPMethod}, merged.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}
