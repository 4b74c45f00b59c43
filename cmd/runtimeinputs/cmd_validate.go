package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

var errInvalid = errors.New("form is invalid")

func newValidateCmd(a *app) *cobra.Command {
	var (
		values   valueFlags
		renderer string
	)
	cmd := &cobra.Command{
		Use:   "validate SCHEMA",
		Short: "Validate values against a schema",
		Long: `validate classifies every value, applies the declared constraints to fixed
values and prints a summary. It exits non-zero when any field has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := schema.ParseSource(args[0])
			if err != nil {
				return err
			}
			prefill, err := values.load()
			if err != nil {
				return err
			}
			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			ctx, cancel := a.context()
			defer cancel()
			req := orchestrator.Request{Source: src, Values: prefill, Renderer: renderer}
			c, err := orch.Coordinator(ctx, req)
			if err != nil {
				return err
			}
			report := c.Validate()

			out, err := orch.Render(ctx, c, req)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			if !report.Valid() {
				a.logger.Debug("validation failed", zap.Strings("paths", report.Paths()))
				return fmt.Errorf("%w: %d field(s) with errors", errInvalid, len(report.Errors))
			}
			return nil
		},
	}
	values.register(cmd)
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "text", "Renderer used for the summary")
	return cmd
}
