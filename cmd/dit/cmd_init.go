package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/repo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty dit repository, replacing any existing one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			compression, err := object.ParseCompression(v.GetString("compression"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			existed := repo.Exists(afero.NewOsFs(), abs)
			if existed {
				fmt.Fprintln(out, color.YellowString("removing existing repository in %s", filepath.Join(abs, repo.DirName)))
			}

			r, err := repo.Init(abs,
				repo.WithLogger(logger),
				repo.WithCompression(compression),
				repo.WithReinit(existed),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "initialized empty dit repository in %s\n", r.DitDir+string(filepath.Separator))
			return nil
		},
	}
	cmd.Flags().String("compression", string(object.CompressionNone), "object compression: none or zstd")
	_ = v.BindPFlag("compression", cmd.Flags().Lookup("compression"))
	return cmd
}
