package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/form"
	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/renderers/tui"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
	"github.com/goliatone/go-runtimeinputs/pkg/submit"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		values    valueFlags
		submitURL string
		flat      bool
		dryRun    bool
		paths     []string
		attempts  int
	)
	cmd := &cobra.Command{
		Use:   "prompt SCHEMA",
		Short: "Fill a form interactively and submit it",
		Long: `prompt asks for every editable field in declaration order. Answers may be
literals, the runtime input sentinel or expressions. Valid forms are posted
as JSON to --submit-url (or ` + envSubmitURL + `), or printed to stdout
when no URL is set.`,
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

			var submitter form.Submitter
			if url := firstNonEmpty(submitURL, os.Getenv(envSubmitURL)); url != "" && !dryRun {
				submitter, err = submit.NewHTTP(url, submit.WithFlat(flat), submit.WithHTTPLogger(a.logger))
				if err != nil {
					return err
				}
			} else {
				submitter = submit.NewWriter(cmd.OutOrStdout(), flat)
			}

			orch, err := a.orchestrator(orchestrator.WithSubmitter(submitter))
			if err != nil {
				return err
			}
			loadCtx, cancel := a.context()
			c, err := orch.Coordinator(loadCtx, orchestrator.Request{Source: src, Values: prefill})
			cancel()
			if err != nil {
				return err
			}

			resolver, err := a.resolver()
			if err != nil {
				return err
			}
			prompter := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithSubset(render.FieldSubset{Paths: paths}),
				tui.WithMaxAttempts(attempts),
				tui.WithSentinel(resolver.Sentinel()),
				tui.WithLogger(a.logger),
			)
			if _, err := prompter.Run(context.Background(), c); err != nil {
				return err
			}

			submitCtx, cancel := a.context()
			defer cancel()
			report, err := c.Submit(submitCtx)
			if err != nil {
				var invalid *form.ValidationError
				if errors.As(err, &invalid) {
					summary, _ := tui.Summary{}.Render(submitCtx, render.Build(c, render.Options{}))
					_, _ = cmd.ErrOrStderr().Write(summary)
				}
				return err
			}
			a.logger.Debug("form submitted", zap.Int("fields", len(report.Results)))
			if _, ok := submitter.(*submit.HTTP); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "Form submitted")
			}
			return nil
		},
	}
	values.register(cmd)
	cmd.Flags().StringVar(&submitURL, "submit-url", "", "Endpoint receiving the JSON payload (or set "+envSubmitURL+")")
	cmd.Flags().BoolVar(&flat, "flat", false, "Submit the path map instead of the nested document")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the payload instead of posting it")
	cmd.Flags().StringSliceVar(&paths, "paths", nil, "Only prompt for fields under these path prefixes")
	cmd.Flags().IntVar(&attempts, "max-attempts", 3, "Attempts per field before giving up")
	return cmd
}
