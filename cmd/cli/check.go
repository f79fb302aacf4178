package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>...",
		Short: "Report malformed lines and files that are not in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.readBundle(args...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			problems := 0
			for _, pkg := range bundle.Packages {
				var collected diag.Collector
				single := uciconfig.NewBundle("uci", "openwrt").Add(pkg.Name, pkg.Path, pkg.Content)
				out, err := a.backend().Rewrite(cmd.Context(), single,
					uciconfig.ParseOptions{Sink: &collected},
					uciconfig.RenderOptions{Sink: &collected})
				if err != nil {
					return err
				}
				for _, d := range collected.All() {
					if d.Line > 0 {
						fmt.Fprintf(w, "%s:%d: %s: %s\n", pkg.Path, d.Line, d.Code, d.Message)
					} else {
						fmt.Fprintf(w, "%s: %s: %s\n", pkg.Path, d.Code, d.Message)
					}
				}
				problems += collected.Len()

				if !bytes.Equal(bytes.TrimSpace(pkg.Content), bytes.TrimSpace(out.Packages[0].Content)) {
					fmt.Fprintf(w, "%s: not in canonical form\n", pkg.Path)
					problems++
					continue
				}
				if collected.Len() == 0 {
					fmt.Fprintf(w, "%s: ok\n", pkg.Path)
				}
			}
			if problems > 0 {
				return &ExitError{Code: 1, Err: fmt.Errorf("%d problem(s) found", problems)}
			}
			return nil
		},
	}
}
