package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/odvcencio/dit/pkg/dlog"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const version = "0.1.0-dev"

// logger is configured from --log-level before any subcommand runs.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "dit",
		Short:         "A small local version control system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := dlog.GetLogger(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			logger = l
			return nil
		},
	}
	root.PersistentFlags().String("log-level", dlog.LevelNone, "log level: debug, info, warn, error or none")
	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(v))
	root.AddCommand(newAddCmd())
	root.AddCommand(newRmCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newMessageCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newReflogCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dit %s\n", version)
		},
	}
}

// openRepo opens the repository containing the current directory.
func openRepo() (*repo.Repo, error) {
	return repo.Open(".", repo.WithLogger(logger))
}
