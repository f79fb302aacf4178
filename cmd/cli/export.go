package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/honeybbq/uciconfig/internal/outfmt"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Print the parsed document as JSON, YAML, TOML or protobuf JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outfmt.Formats, outfmt.Format(format)) {
				return fmt.Errorf("unsupported format %q (use one of %v)", format, outfmt.Formats)
			}
			bundle, err := a.readBundle(args[0])
			if err != nil {
				return err
			}
			docs, err := a.backend().Parse(cmd.Context(), bundle, a.parseOptions(a.sink()))
			if err != nil {
				return err
			}
			printer := outfmt.NewPrinter(format, query)
			printer.Writer = cmd.OutOrStdout()
			return printer.PrintDocument(docs[0])
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(outfmt.FormatJSON), "output format: json|yaml|toml|protojson")
	cmd.Flags().StringVarP(&query, "query", "q", "", "jq expression applied to the document before printing")
	return cmd
}
