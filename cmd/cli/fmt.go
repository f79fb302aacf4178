package main

import (
	"github.com/spf13/cobra"

	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		toStdout    bool
		omitPackage bool
	)
	cmd := &cobra.Command{
		Use:   "fmt <path>",
		Short: "Rewrite a UCI file in canonical form without sorting sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.readBundle(args[0])
			if err != nil {
				return err
			}
			sink := a.sink()
			out, err := a.backend().Rewrite(cmd.Context(), bundle, a.parseOptions(sink), uciconfig.RenderOptions{Sink: sink, OmitPackage: omitPackage})
			if err != nil {
				return err
			}
			content := out.Packages[0].Content
			if toStdout {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}
			return a.writeOutput(a.outputPath(args[0]), content)
		},
	}
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "write the result to stdout instead of <path>.new")
	cmd.Flags().BoolVar(&omitPackage, "omit-package", false, "drop the \"package <name>\" line from the output")
	return cmd
}
