package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-runtimeinputs/pkg/inputs"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered input types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := inputs.NewRegistry()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tPRIMITIVE\tFIELD\tLOOKUP")
			for _, tag := range registry.Tags() {
				component, err := registry.Resolve(tag)
				if err != nil {
					return err
				}
				primitive, field := "-", "-"
				if v, ok := component.(inputs.Variant); ok {
					primitive, field = string(v.Primitive), string(v.Field)
				}
				lookup := string(component.Lookup())
				if lookup == "" {
					lookup = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tag, primitive, field, lookup)
			}
			return tw.Flush()
		},
	}
}
