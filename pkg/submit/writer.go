package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
)

// Writer prints the submitted document as indented JSON, one document per
// submit. It is useful for dry runs and pipelines that read stdout.
type Writer struct {
	mu   sync.Mutex
	out  io.Writer
	flat bool
}

var _ form.Submitter = (*Writer)(nil)

// NewWriter writes nested documents to out. When flat is true the canonical
// path map is written instead.
func NewWriter(out io.Writer, flat bool) *Writer {
	return &Writer{out: out, flat: flat}
}

// Submit implements form.Submitter.
func (w *Writer) Submit(ctx context.Context, values form.Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var doc any = map[string]any(values)
	if !w.flat {
		nested, err := values.Expand()
		if err != nil {
			return fmt.Errorf("submit: expand values: %w", err)
		}
		doc = nested
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	enc := json.NewEncoder(w.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("submit: write values: %w", err)
	}
	return nil
}
