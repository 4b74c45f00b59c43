package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-runtimeinputs/pkg/render"
)

// Summary renders a form as an aligned plain-text table for terminals.
type Summary struct{}

var _ render.Renderer = Summary{}

// Name implements render.Renderer.
func (Summary) Name() string { return "text" }

// ContentType implements render.Renderer.
func (Summary) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements render.Renderer.
func (Summary) Render(ctx context.Context, form render.Form) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if form.Title != "" {
		fmt.Fprintf(&buf, "%s\n\n", form.Title)
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTYPE\tKIND\tVALUE\tFLAGS")
	for _, field := range form.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", field.Path, field.Tag, field.ValueKind, field.Raw, strings.Join(flags(field.Required, field.ReadOnly, field.Unsupported), ","))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	for _, field := range form.Fields {
		for _, msg := range field.Errors {
			fmt.Fprintf(&buf, "error: %s: %s\n", field.Path, msg)
		}
	}
	for _, msg := range form.Errors {
		fmt.Fprintf(&buf, "error: %s\n", msg)
	}
	return buf.Bytes(), nil
}

func flags(required, readOnly, unsupported bool) []string {
	var out []string
	if required {
		out = append(out, "required")
	}
	if readOnly {
		out = append(out, "read-only")
	}
	if unsupported {
		out = append(out, "unsupported")
	}
	if len(out) == 0 {
		return []string{"-"}
	}
	return out
}
