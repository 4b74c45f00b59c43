package main

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-runtimeinputs/pkg/orchestrator"
	"github.com/goliatone/go-runtimeinputs/pkg/render"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

type renderFlags struct {
	values      valueFlags
	renderer    string
	output      string
	validate    bool
	readOnly    bool
	paths       []string
	hidden      map[string]string
	themeName   string
	variant     string
	tokens      map[string]string
	assets      map[string]string
	assetPrefix string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render SCHEMA",
		Short: "Render a form as html, json or text",
		Example: `  runtimeinputs render deploy.yaml --set service.port='<+input>' --validate
  runtimeinputs render deploy.hcl --renderer json -o form.json
  runtimeinputs render deploy.yaml --theme acme --token brand=#0af --asset stylesheet=acme.css --asset-prefix /static`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, f, args[0])
		},
	}
	f.values.register(cmd)
	cmd.Flags().StringVarP(&f.renderer, "renderer", "r", "html", "Renderer name (html, json, text)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "Validate before rendering so errors are attached")
	cmd.Flags().BoolVar(&f.readOnly, "read-only", false, "Render every field read-only")
	cmd.Flags().StringSliceVar(&f.paths, "paths", nil, "Only render fields under these path prefixes")
	cmd.Flags().StringToStringVar(&f.hidden, "hidden", nil, "Hidden fields as name=value")
	cmd.Flags().StringVar(&f.themeName, "theme", "", "Theme name passed to the html renderer")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Theme variant")
	cmd.Flags().StringToStringVar(&f.tokens, "token", nil, "Theme tokens as name=value, exposed as CSS variables")
	cmd.Flags().StringToStringVar(&f.assets, "asset", nil, "Theme assets as key=file")
	cmd.Flags().StringVar(&f.assetPrefix, "asset-prefix", "", "URL prefix for theme assets")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, f *renderFlags, location string) error {
	src, err := schema.ParseSource(location)
	if err != nil {
		return err
	}
	values, err := f.values.load()
	if err != nil {
		return err
	}

	var extra []orchestrator.Option
	if selector, err := f.themeSelector(); err != nil {
		return err
	} else if selector != nil {
		extra = append(extra, orchestrator.WithThemeSelector(selector))
	}
	orch, err := a.orchestrator(extra...)
	if err != nil {
		return err
	}

	ctx, cancel := a.context()
	defer cancel()
	out, err := orch.Generate(ctx, orchestrator.Request{
		Source:       src,
		Values:       values,
		ReadOnly:     f.readOnly,
		Validate:     f.validate,
		Renderer:     f.renderer,
		ThemeName:    f.themeName,
		ThemeVariant: f.variant,
		RenderOptions: render.Options{
			Hidden: f.hidden,
			Subset: render.FieldSubset{Paths: f.paths},
		},
	})
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(f.output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Debug("form written", zap.String("path", f.output), zap.Int("bytes", len(out)))
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", f.output)
	return nil
}

// themeSelector builds a single-theme selector from flags, or nil when no
// theme flag is set.
func (f *renderFlags) themeSelector() (*orchestrator.ManifestSelector, error) {
	if f.themeName == "" && len(f.tokens) == 0 && len(f.assets) == 0 {
		return nil, nil
	}
	name := f.themeName
	if name == "" {
		name = "default"
		f.themeName = name
	}
	manifest := &theme.Manifest{
		Name:   name,
		Tokens: f.tokens,
		Assets: theme.Assets{
			Prefix: f.assetPrefix,
			Files:  f.assets,
		},
	}
	if f.variant != "" {
		manifest.Variants = map[string]theme.Variant{f.variant: {}}
	}
	return orchestrator.NewManifestSelector(name, f.variant, manifest)
}
