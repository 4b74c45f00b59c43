package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-runtimeinputs/pkg/i18n"
	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

const (
	envSentinel          = "RUNTIMEINPUTS_SENTINEL"
	envExpressionPattern = "RUNTIMEINPUTS_EXPRESSION_PATTERN"
	envSubmitURL         = "RUNTIMEINPUTS_SUBMIT_URL"
	envLocale            = "RUNTIMEINPUTS_LOCALE"
)

// app holds the global flags and the logger shared by subcommands.
type app struct {
	verbose           bool
	envFile           string
	sentinel          string
	expressionPattern string
	locale            string
	catalog           string
	references        []string
	timeout           time.Duration

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "runtimeinputs",
		Short: "Render, validate and submit pipeline runtime input forms",
		Long: `runtimeinputs loads a schema of typed input declarations (YAML, JSON,
HCL or OpenAPI) and works with the form it describes.

Every value may be a fixed literal, the runtime placeholder <+input> (with
optional .default() and .allowedValues() modifiers) or an expression such
as <+pipeline.variables.tag>.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before reading RUNTIMEINPUTS_* variables")
	flags.StringVar(&a.sentinel, "sentinel", "", "Runtime input sentinel (or set "+envSentinel+")")
	flags.StringVar(&a.expressionPattern, "expression-pattern", "", "Expression regular expression (or set "+envExpressionPattern+")")
	flags.StringVar(&a.locale, "locale", "", "Locale used for labels and messages (or set "+envLocale+")")
	flags.StringVar(&a.catalog, "catalog", "", "Translation catalog (YAML or JSON)")
	flags.StringSliceVar(&a.references, "references", nil, "Reference data files or URLs (repeatable)")
	flags.DurationVar(&a.timeout, "timeout", 30*time.Second, "Timeout for remote schemas and submission")

	root.AddCommand(
		newRenderCmd(a),
		newValidateCmd(a),
		newPromptCmd(a),
		newTypesCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if a.envFile != "" {
		// A missing default .env is fine; an explicit one must load.
		if err := godotenv.Load(a.envFile); err != nil && (cmd.Flags().Changed("env-file") || !os.IsNotExist(err)) {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	a.sentinel = firstNonEmpty(a.sentinel, os.Getenv(envSentinel))
	a.expressionPattern = firstNonEmpty(a.expressionPattern, os.Getenv(envExpressionPattern))
	a.locale = firstNonEmpty(a.locale, os.Getenv(envLocale))

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *app) resolver() (*runtimevalue.Resolver, error) {
	var opts []runtimevalue.Option
	if a.sentinel != "" {
		opts = append(opts, runtimevalue.WithSentinel(a.sentinel))
	}
	if a.expressionPattern != "" {
		opts = append(opts, runtimevalue.WithExpressionPattern(a.expressionPattern))
	}
	return runtimevalue.New(opts...)
}

// orchestrator assembles the pipeline from the global flags plus extra.
func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	resolver, err := a.resolver()
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(schema.NewLoader(schema.WithHTTPTimeout(a.timeout))),
		orchestrator.WithResolver(resolver),
		orchestrator.WithLogger(a.logger),
	}
	for _, ref := range a.references {
		src, err := schema.ParseSource(ref)
		if err != nil {
			return nil, fmt.Errorf("references %q: %w", ref, err)
		}
		options = append(options, orchestrator.WithReferencesSource(src))
	}
	if a.catalog != "" {
		data, err := os.ReadFile(a.catalog)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		catalog, err := i18n.ParseCatalog(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTranslator(i18n.NewMapTranslator(catalog, a.locale), a.locale))
	}
	return orchestrator.New(append(options, extra...)...), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
