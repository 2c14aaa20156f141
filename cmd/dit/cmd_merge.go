package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			report, err := r.Merge(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.Commit == nil {
				fmt.Fprintln(out, "already up to date")
				return nil
			}
			for _, f := range report.Files {
				switch f.Status {
				case repo.MergeConflict:
					fmt.Fprintf(out, "%s %s\n", color.RedString("CONFLICT"), f.Path)
				case repo.MergeAdded:
					fmt.Fprintf(out, "%s %s\n", color.GreenString("added"), f.Path)
				default:
					fmt.Fprintf(out, "merged %s\n", f.Path)
				}
			}
			fmt.Fprintf(out, "[%s] %s\n", report.Commit.Hash.Short(), report.Commit.Description)
			if report.HasConflicts {
				fmt.Fprintln(out, color.YellowString("fix conflicts in the files above, then add and commit the result"))
			}
			return nil
		},
	}
}
