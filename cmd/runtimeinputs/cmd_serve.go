package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/references"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	addr         string
	route        string
	defaultLimit int
	maxLimit     int
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reference data for select fields over HTTP",
		Long: `serve exposes the built-in reference lists merged with every --references
source at GET <route>/<kind>?q=&limit=, for browser forms that fill select
fields on demand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := a.referencesHandler(opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, opts.addr, handler)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", ":8080", "Listen address")
	flags.StringVar(&opts.route, "route", "/api/references", "Route prefix the lookup kind follows")
	flags.IntVar(&opts.defaultLimit, "limit", 50, "Default number of options returned")
	flags.IntVar(&opts.maxLimit, "max-limit", 500, "Maximum number of options a client may request")
	return cmd
}

// referencesHandler loads the reference sources once and serves the merged
// snapshot.
func (a *app) referencesHandler(opts *serveOptions) (http.Handler, error) {
	orch, err := a.orchestrator(orchestrator.WithReferences(references.Defaults()))
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.context()
	defer cancel()
	snapshot, err := orch.References(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("serving references", zap.Int("kinds", len(snapshot.Kinds())), zap.String("route", opts.route))

	mux := http.NewServeMux()
	mux.Handle(opts.route+"/", references.Handler(snapshot,
		references.WithRoutePath(opts.route),
		references.WithLimits(opts.defaultLimit, opts.maxLimit),
	))
	return mux, nil
}

func (a *app) serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
