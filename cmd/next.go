package cmd

import (
	"fmt"

	"github.com/rubrical-studios/pubspec-bump/internal/bump"
	"github.com/spf13/cobra"
)

type nextOptions struct {
	build bool
}

func newNextCommand() *cobra.Command {
	opts := &nextOptions{}

	cmd := &cobra.Command{
		Use:   "next <version> <major|minor|patch|none>",
		Short: "Print the version that follows a given version",
		Long: `Print the result of incrementing a version without touching any file.

Examples:
  pubspec-bump next 1.2.3 minor          # 1.3.0
  pubspec-bump next 1.2.3+4 patch --build  # 1.2.4+5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.build, "build", "b", false, "Increment the +build counter")

	return cmd
}

func runNext(cmd *cobra.Command, args []string, opts *nextOptions) error {
	v, err := bump.Parse(args[0])
	if err != nil {
		return err
	}
	k, err := bump.ParseKind(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), v.Next(k, opts.build))
	return nil
}
