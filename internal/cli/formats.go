package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodegen"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported format codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registered := map[barcodegen.Symbology]bool{}
			for _, s := range barcodegen.RegisteredSymbologies() {
				registered[s] = true
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tENCODER")
			for _, code := range barcodegen.FormatCodes() {
				status := "missing"
				if registered[barcodegen.Resolve(code)] {
					status = "yes"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", int(code), code, status)
			}
			fmt.Fprintf(tw, "other\t%s (fallback)\t\n", barcodegen.DefaultSymbology)
			return tw.Flush()
		},
	}
}
