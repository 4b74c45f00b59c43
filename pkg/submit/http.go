package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
)

const (
	// IdempotencyHeader carries a fresh id for every submit attempt.
	IdempotencyHeader = "Idempotency-Key"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
)

// ErrRejected matches every *HTTPError.
var ErrRejected = errors.New("submit: rejected")

// HTTPError reports a non-2xx response. Field errors found in the response
// body are mapped onto the submitted paths.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Mapping    render.ErrorMapping
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("submit: server returned %d", e.StatusCode)
	if len(e.Mapping.Form) > 0 {
		msg += ": " + strings.Join(e.Mapping.Form, "; ")
	}
	return msg
}

// FieldErrors implements form.FieldErrorer.
func (e *HTTPError) FieldErrors() map[string][]string {
	return e.Mapping.FieldErrors()
}

// Is matches ErrRejected.
func (e *HTTPError) Is(target error) bool {
	return target == ErrRejected
}

// HTTPOption configures an HTTP submitter.
type HTTPOption func(*HTTP)

// WithClient overrides the HTTP client.
func WithClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithMethod overrides the request method (POST by default).
func WithMethod(method string) HTTPOption {
	return func(h *HTTP) {
		if m := strings.ToUpper(strings.TrimSpace(method)); m != "" {
			h.method = m
		}
	}
}

// WithHeader adds a static request header.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) {
		h.header.Set(key, value)
	}
}

// WithFlat posts the canonical path map instead of the nested document.
func WithFlat(flat bool) HTTPOption {
	return func(h *HTTP) {
		h.flat = flat
	}
}

// WithIDGenerator overrides the idempotency key source.
func WithIDGenerator(fn func() string) HTTPOption {
	return func(h *HTTP) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithHTTPLogger sets the logger used for request tracing.
func WithHTTPLogger(logger *zap.Logger) HTTPOption {
	return func(h *HTTP) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// HTTP posts resolved values as JSON to an endpoint. It never retries.
type HTTP struct {
	endpoint string
	method   string
	client   *http.Client
	header   http.Header
	flat     bool
	newID    func() string
	logger   *zap.Logger
}

var _ form.Submitter = (*HTTP)(nil)

// NewHTTP constructs an HTTP submitter for endpoint.
func NewHTTP(endpoint string, options ...HTTPOption) (*HTTP, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("submit: endpoint is required")
	}
	h := &HTTP{
		endpoint: endpoint,
		method:   http.MethodPost,
		client:   &http.Client{Timeout: defaultTimeout},
		header:   make(http.Header),
		newID:    func() string { return uuid.NewString() },
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Submit implements form.Submitter.
func (h *HTTP) Submit(ctx context.Context, values form.Values) error {
	payload, err := encodePayload(values, h.flat)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, h.method, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	for key, vals := range h.header {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	id := h.newID()
	req.Header.Set(IdempotencyHeader, id)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %s %s: %w", h.method, h.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("submit: read response: %w", err)
	}
	h.logger.Debug("submit response",
		zap.String("endpoint", h.endpoint),
		zap.String("idempotency_key", id),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       body,
		Mapping:    render.MapErrorPayload(values.Paths(), decodeErrorPayload(body)),
	}
}

func encodePayload(values form.Values, flat bool) ([]byte, error) {
	var doc any = map[string]any(values)
	if !flat {
		nested, err := values.Expand()
		if err != nil {
			return nil, fmt.Errorf("submit: expand values: %w", err)
		}
		doc = nested
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("submit: encode values: %w", err)
	}
	return payload, nil
}

// decodeErrorPayload accepts {"errors": {path: [msg]}}, {"errors": {path:
// msg}} and {"message": msg}. Anything else is ignored.
func decodeErrorPayload(body []byte) map[string][]string {
	var envelope struct {
		Errors  map[string]json.RawMessage `json:"errors"`
		Message string                     `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}

	out := make(map[string][]string, len(envelope.Errors)+1)
	for path, raw := range envelope.Errors {
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			out[path] = many
			continue
		}
		var one string
		if err := json.Unmarshal(raw, &one); err == nil {
			out[path] = []string{one}
		}
	}
	if msg := strings.TrimSpace(envelope.Message); msg != "" {
		out["form"] = append(out["form"], msg)
	}
	return out
}
