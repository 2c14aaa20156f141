package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <text...>",
		Short: "Write the message used by the next 'commit -s'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			return r.SetMessage(strings.Join(args, " "))
		},
	}
}
