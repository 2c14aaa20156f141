package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one and switch to it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if err := r.CreateBranch(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "switched to a new branch '%s'\n", args[0])
				return nil
			}

			branches, err := r.Branches()
			if err != nil {
				return err
			}
			current, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			for _, b := range branches {
				if b == current {
					fmt.Fprintln(out, color.YellowString("*"), b)
				} else {
					fmt.Fprintln(out, " ", b)
				}
			}
			return nil
		},
	}
}
