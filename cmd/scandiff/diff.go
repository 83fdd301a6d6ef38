package main

import (
	"github.com/spf13/cobra"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-scan> <new-scan>",
		Short: "Compare two scan files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, err := a.showKinds()
			if err != nil {
				return err
			}
			exp, err := a.exporter()
			if err != nil {
				return err
			}

			report, err := a.newService(nil).CompareFiles(cmd.Context(), args[0], args[1], show)
			if err != nil {
				return err
			}
			return a.write(exp, report)
		},
	}
}
