package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scandiff/internal/codec"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render <report.json|report.yaml>",
		Short: "Re-render a saved report in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imp, err := codec.ImporterFor(args[0])
			if err != nil {
				return err
			}
			exp, err := a.exporter()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open report: %w", err)
			}
			defer f.Close()

			report, err := imp.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return a.write(exp, report)
		},
	}
}
