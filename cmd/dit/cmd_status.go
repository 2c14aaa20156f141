package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged, unstaged and untracked files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			info, err := r.Info()
			if err != nil {
				return err
			}
			entries, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if info.Head.IsNull() {
				fmt.Fprintf(out, "on %s (no commits yet)\n", info.Branch)
			} else {
				fmt.Fprintf(out, "on %s at %s\n", info.Branch, info.Head.Short())
			}

			var staged, unstaged, untracked []string
			for _, e := range entries {
				switch e.IndexStatus {
				case repo.StatusNew:
					staged = append(staged, color.GreenString("  + %s", e.Path))
				case repo.StatusModified:
					staged = append(staged, color.GreenString("  ~ %s", e.Path))
				case repo.StatusDeleted:
					staged = append(staged, color.GreenString("  - %s", e.Path))
				}
				switch e.WorkStatus {
				case repo.StatusDirty:
					unstaged = append(unstaged, color.RedString("  ~ %s", e.Path))
				case repo.StatusDeleted:
					unstaged = append(unstaged, color.RedString("  - %s", e.Path))
				case repo.StatusUntracked:
					untracked = append(untracked, "  "+e.Path)
				}
			}

			printSection(out, "staged:", staged)
			printSection(out, "unstaged:", unstaged)
			printSection(out, "untracked:", untracked)
			return nil
		},
	}
}

func printSection(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
