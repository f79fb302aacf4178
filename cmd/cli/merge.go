package main

import (
	"github.com/spf13/cobra"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

func newMergeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge <base> <overlay>...",
		Short: "Merge UCI files, later files overriding earlier ones",
		Long: `merge layers UCI files on top of each other. Named sections are merged by
name (options overwritten, new list values appended), anonymous sections are
appended unless an identical one already exists.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.readBundle(args...)
			if err != nil {
				return err
			}
			sink := a.sink()
			backend := a.backend()
			docs, err := backend.Parse(cmd.Context(), bundle, a.parseOptions(sink))
			if err != nil {
				return err
			}
			merged, err := uciconfig.Merge(docs, sink)
			if err != nil {
				return err
			}
			out, err := backend.Render(cmd.Context(), []string{"merged"}, []*uci.Document{merged}, uciconfig.RenderOptions{Sink: sink})
			if err != nil {
				return err
			}
			content := out.Packages[0].Content
			if output != "" {
				return a.writeOutput(output, content)
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the merged result to a file instead of stdout")
	return cmd
}
