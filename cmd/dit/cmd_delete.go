package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <paths...>",
		Short: "Mark paths for deletion in the next commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			if err := r.MarkDeleted(args); err != nil {
				return err
			}
			for _, p := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "marked %s for deletion\n", p)
			}
			return nil
		},
	}
}
