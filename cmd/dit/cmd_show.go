package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [branch]",
		Short: "Show the commit graph of a branch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			info, err := r.Info()
			if err != nil {
				return err
			}
			branch := info.Branch
			if len(args) == 1 {
				branch = args[0]
			}

			roots, err := r.CommitTree(branch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "tree", "":
				if len(roots) == 0 {
					fmt.Fprintf(out, "branch %s has no commits\n", branch)
					return nil
				}
				for _, n := range roots {
					printCommitNode(out, n, info.Head, 0)
				}
				return nil
			case "yaml":
				data, err := yaml.Marshal(roots)
				if err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				_, err = out.Write(data)
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(roots)
			default:
				return fmt.Errorf("unknown output format %q (want tree, yaml or json)", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "tree", "output format: tree, yaml or json")
	return cmd
}

// printCommitNode writes n and its descendants, one commit per line,
// indented by depth. The current head is starred.
func printCommitNode(w io.Writer, n *repo.CommitNode, head object.Hash, depth int) {
	marker := " "
	if n.Commit.Hash == head {
		marker = color.YellowString("*")
	}
	fmt.Fprintf(w, "%s%s %s %s\n", strings.Repeat("  ", depth), marker,
		color.YellowString(n.Commit.Hash.Short()), firstLine(n.Commit.Description))
	for _, c := range n.Children {
		printCommitNode(w, c, head, depth+1)
	}
}
