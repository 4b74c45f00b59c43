package submit

import (
	"context"
	"errors"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
)

// Func adapts a function receiving the nested document to form.Submitter.
func Func(fn func(ctx context.Context, doc map[string]any) error) form.Submitter {
	return form.SubmitterFunc(func(ctx context.Context, values form.Values) error {
		if fn == nil {
			return errors.New("submit: nil func")
		}
		doc, err := values.Expand()
		if err != nil {
			return err
		}
		return fn(ctx, doc)
	})
}
