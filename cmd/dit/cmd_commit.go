package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/cobra"
)

var errEmptyMessage = errors.New("empty commit message")

func newCommitCmd() *cobra.Command {
	var message string
	var useBuffer bool
	var revert string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged tree, or revert to an earlier commit",
		Long: `Record the staged tree as a new commit on the current branch.

The description comes from -m, from the message buffer with -s (see
'dit message'), or otherwise from $EDITOR opened on the buffer.
With -r, head moves back to the given commit instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if revert != "" {
				h, ok := object.ParseHash(revert)
				if !ok {
					return fmt.Errorf("revert: invalid commit hash %q", revert)
				}
				if err := r.Revert(h); err != nil {
					return err
				}
				fmt.Fprintf(out, "head is now %s\n", h.Short())
				return nil
			}

			desc := message
			if !cmd.Flags().Changed("message") {
				if !useBuffer {
					if err := editMessage(r); err != nil {
						return err
					}
				}
				if desc, err = r.Message(); err != nil {
					return err
				}
				desc = strings.TrimRight(desc, "\n")
			}
			if strings.TrimSpace(desc) == "" {
				return errEmptyMessage
			}

			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			c, err := r.Commit(desc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "[%s %s] %s\n", branch, c.Hash.Short(), firstLine(c.Description))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit description")
	cmd.Flags().BoolVarP(&useBuffer, "stored", "s", false, "use the message written by 'dit message'")
	cmd.Flags().StringVarP(&revert, "revert", "r", "", "move head back to this commit of the current branch")
	cmd.MarkFlagsMutuallyExclusive("message", "stored", "revert")
	return cmd
}

// editMessage opens $EDITOR (vi when unset or blank) on the message buffer.
func editMessage(r *repo.Repo) error {
	editor := os.Getenv("EDITOR")
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		editor = "vi"
		parts = []string{editor}
	}
	c := exec.Command(parts[0], append(parts[1:], r.MessagePath())...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("run editor %s: %w", editor, err)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
