package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipp01105/chanlog/formatter"
)

func newDumpCmd(_ *app) *cobra.Command {
	var asJSON, source bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Decode a CBOR capture written with --format cbor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			fc := formatter.Config{IncludeCaller: source}
			var out formatter.Formatter = formatter.NewTextFormatter(fc)
			if asJSON {
				out = formatter.NewJSONFormatter(fc)
			}

			dec := formatter.NewCBORDecoder(f)
			w := cmd.OutOrStdout()
			for n := 0; ; n++ {
				rec, err := dec.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("record %d: %w", n, err)
				}
				line, err := out.Format(rec.Entry())
				if err != nil {
					return fmt.Errorf("record %d: %w", n, err)
				}
				if _, err := w.Write(line); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	cmd.Flags().BoolVar(&source, "source", false, "print call sites when recorded")
	return cmd
}
