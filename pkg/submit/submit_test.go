package submit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
	"github.com/goliatone/go-runtimeinputs/pkg/submit"
)

type capturedRequest struct {
	method string
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.header = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestHTTPPostsNestedDocument(t *testing.T) {
	srv, captured := newServer(t, http.StatusAccepted, `{}`)
	h, err := submit.NewHTTP(srv.URL,
		submit.WithHeader("X-Pipeline", "deploy"),
		submit.WithIDGenerator(func() string { return "fixed-id" }),
	)
	if err != nil {
		t.Fatalf("new http: %v", err)
	}

	err = h.Submit(context.Background(), form.Values{
		"service.name":    "api",
		"service.port":    float64(8080),
		"steps.0.timeout": "<+input>",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if captured.method != http.MethodPost {
		t.Fatalf("expected POST, got %s", captured.method)
	}
	if got := captured.header.Get(submit.IdempotencyHeader); got != "fixed-id" {
		t.Fatalf("expected idempotency key, got %q", got)
	}
	if got := captured.header.Get("X-Pipeline"); got != "deploy" {
		t.Fatalf("expected static header, got %q", got)
	}
	want := map[string]any{
		"service": map[string]any{"name": "api", "port": float64(8080)},
		"steps":   []any{map[string]any{"timeout": "<+input>"}},
	}
	if diff := cmp.Diff(want, captured.body); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPFlatPayloadAndMethod(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, ``)
	h, err := submit.NewHTTP(srv.URL, submit.WithFlat(true), submit.WithMethod("put"))
	if err != nil {
		t.Fatalf("new http: %v", err)
	}
	if err := h.Submit(context.Background(), form.Values{"service.name": "api"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if captured.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", captured.method)
	}
	if diff := cmp.Diff(map[string]any{"service.name": "api"}, captured.body); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if captured.header.Get(submit.IdempotencyHeader) == "" {
		t.Fatalf("expected a generated idempotency key")
	}
}

func TestHTTPMapsFieldErrors(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnprocessableEntity, `{
		"message": "deployment rejected",
		"errors": {
			"/body/service/name": ["name already taken"],
			"service.port": "port reserved",
			"unknown": ["region unavailable"]
		}
	}`)
	h, err := submit.NewHTTP(srv.URL)
	if err != nil {
		t.Fatalf("new http: %v", err)
	}

	err = h.Submit(context.Background(), form.Values{"service.name": "api", "service.port": float64(80)})
	var httpErr *submit.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if !errors.Is(err, submit.ErrRejected) {
		t.Fatalf("expected ErrRejected match")
	}
	if httpErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", httpErr.StatusCode)
	}
	wantFields := map[string][]string{
		"service.name": {"name already taken"},
		"service.port": {"port reserved"},
	}
	if diff := cmp.Diff(wantFields, httpErr.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if len(httpErr.Mapping.Form) != 2 {
		t.Fatalf("expected two form-level messages, got %v", httpErr.Mapping.Form)
	}
}

func TestHTTPFieldErrorsReachCoordinator(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"errors": {"service.name": ["name already taken"]}}`)
	h, err := submit.NewHTTP(srv.URL)
	if err != nil {
		t.Fatalf("new http: %v", err)
	}
	c, err := form.New(schema.Schema{
		ID:           "deploy",
		Declarations: []schema.Declaration{{Path: "service.name", Type: "string"}},
	}, form.WithSubmitter(h), form.WithPrefill(map[string]any{"service.name": "api"}))
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}

	_, err = c.Submit(context.Background())
	if !errors.Is(err, form.ErrSubmitFailed) || !errors.Is(err, submit.ErrRejected) {
		t.Fatalf("expected submit failure wrapping rejection, got %v", err)
	}
	if c.Phase() != form.PhaseEditing {
		t.Fatalf("expected editing phase, got %s", c.Phase())
	}
	if diff := cmp.Diff(map[string][]string{"service.name": {"name already taken"}}, c.Errors()); diff != "" {
		t.Fatalf("coordinator errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewHTTPRequiresEndpoint(t *testing.T) {
	if _, err := submit.NewHTTP("  "); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestFuncReceivesNestedDocument(t *testing.T) {
	var got map[string]any
	s := submit.Func(func(_ context.Context, doc map[string]any) error {
		got = doc
		return nil
	})
	if err := s.Submit(context.Background(), form.Values{"a.b": "c"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": map[string]any{"b": "c"}}, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterPrintsDocument(t *testing.T) {
	var buf bytes.Buffer
	w := submit.NewWriter(&buf, false)
	if err := w.Submit(context.Background(), form.Values{"service.name": "<+input>"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "{\n  \"service\": {\n    \"name\": \"<+input>\"\n  }\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q", got)
	}
}
