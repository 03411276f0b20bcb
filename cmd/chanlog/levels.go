package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipp01105/chanlog/facade"
)

func newLevelsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Print the abstract to engine level table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-8s %-6s %s\n", "ABSTRACT", "ENGINE", "READS BACK AS")
			for _, l := range facade.Levels() {
				b, ok := facade.ToBackend(l)
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%-8s %-6s %s\n", l, b, facade.ToAbstract(b))
			}
			return nil
		},
	}
}
