package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var nameOnly bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show what the next commit would change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			changes, err := r.Diff()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range changes {
				if nameOnly {
					fmt.Fprintf(out, "%s\t%s\n", c.Type, c.Path)
					continue
				}
				patch, err := c.Patch()
				if err != nil {
					return fmt.Errorf("diff %s: %w", c.Path, err)
				}
				printPatch(out, patch)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nameOnly, "name-status", false, "show only change type and path")
	return cmd
}

// printPatch writes a unified diff, coloring headers and changed lines.
func printPatch(w io.Writer, patch string) {
	for _, line := range strings.SplitAfter(patch, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprint(w, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, color.CyanString("%s", line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, color.RedString("%s", line))
		default:
			fmt.Fprint(w, line)
		}
	}
}
