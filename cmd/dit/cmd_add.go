package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <paths...>",
		Short: "Stage files and directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			skipped, err := r.Add(args)
			for _, p := range skipped {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("skipped %s: no such file or directory", p))
			}
			return err
		},
	}
}
