package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <paths...>",
		Short: "Remove paths from the staging area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			missing, err := r.Remove(args)
			for _, p := range missing {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("not staged: %s", p))
			}
			return err
		},
	}
}
