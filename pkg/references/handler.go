package references

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// HTTPError lets a Guard choose the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// GuardFunc rejects a request by returning an error.
type GuardFunc func(r *http.Request) error

// SnapshotFunc returns the reference data to serve for a request.
type SnapshotFunc func(r *http.Request) (Snapshot, error)

// HandlerOptions configures Handler.
type HandlerOptions struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
}

// HandlerOption mutates HandlerOptions.
type HandlerOption func(*HandlerOptions)

// WithRoutePath sets the prefix the lookup kind is read after.
func WithRoutePath(path string) HandlerOption {
	return func(o *HandlerOptions) { o.RoutePath = path }
}

// WithLimits sets the default and maximum number of options returned.
func WithLimits(defaultLimit, maxLimit int) HandlerOption {
	return func(o *HandlerOptions) {
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithGuard installs an authorization hook.
func WithGuard(guard GuardFunc) HandlerOption {
	return func(o *HandlerOptions) { o.Guard = guard }
}

func newHandlerOptions(fns ...HandlerOption) HandlerOptions {
	opts := HandlerOptions{
		RoutePath:    "/api/references",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     500,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	opts.RoutePath = "/" + strings.Trim(strings.TrimSpace(opts.RoutePath), "/")
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	return opts
}

type optionsResponse struct {
	Kind LookupKind `json:"kind"`
	Data []Option   `json:"data"`
}

// Handler serves `GET {route}/{kind}?q=&limit=` from a static snapshot, so
// browser clients can fill select fields without bundling reference data.
func Handler(snapshot Snapshot, fns ...HandlerOption) http.Handler {
	return HandlerFunc(func(*http.Request) (Snapshot, error) { return snapshot, nil }, fns...)
}

// HandlerFunc is Handler over a snapshot resolved per request.
func HandlerFunc(source SnapshotFunc, fns ...HandlerOption) http.Handler {
	opts := newHandlerOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		kind := LookupKind(strings.Trim(strings.TrimPrefix(r.URL.Path, opts.RoutePath), "/"))
		if kind == LookupNone {
			http.Error(w, "missing lookup kind", http.StatusBadRequest)
			return
		}
		snapshot, err := source(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		list, ok := snapshot.Options(kind)
		if !ok {
			http.Error(w, "unknown lookup kind", http.StatusNotFound)
			return
		}

		query := r.URL.Query()
		results := Search(list, query.Get(opts.SearchParam), clampLimit(parseInt(query.Get(opts.LimitParam)), opts))
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Kind: kind, Data: results})
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func clampLimit(limit int, opts HandlerOptions) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func parseInt(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
