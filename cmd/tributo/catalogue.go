package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tributo/internal/f29"
)

func newCatalogueCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "List the form codes the parser recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return root.writeJSON(cmd.OutOrStdout(), f29.Catalogue())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tGROUP\tLABEL")
			for _, f := range f29.Catalogue() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Code, f.Group, f.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
