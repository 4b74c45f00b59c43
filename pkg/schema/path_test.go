package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: "service.port", want: []string{"service", "port"}},
		{in: "steps[0].with.url", want: []string{"steps", "0", "with", "url"}},
		{in: `env["HOME"]`, want: []string{"env", "HOME"}},
		{in: "$.stages[1]", want: []string{"stages", "1"}},
		{in: "  ", want: nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ParsePath(tc.in)); diff != "" {
			t.Fatalf("%q: segments mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestCanonicalPath_BracketAndDotAgree(t *testing.T) {
	if CanonicalPath("a[0].b") != CanonicalPath("a.0.b") {
		t.Fatalf("expected bracket and dot paths to canonicalise identically")
	}
}
