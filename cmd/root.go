package cmd

import (
	"errors"
	"fmt"

	pkgversion "github.com/rubrical-studios/pubspec-bump/internal/version"
	"github.com/spf13/cobra"
)

// version is set by ldflags during release builds.
// When empty (default), falls back to the source constant in internal/version.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.Version
}

func NewRootCommand() *cobra.Command {
	opts := &bumpOptions{}

	cmd := &cobra.Command{
		Use:   "pubspec-bump",
		Short: "Increment the pubspec.yaml version from pull request labels or commit messages",
		Long: `pubspec-bump increments the version field of a pubspec.yaml (or any YAML
manifest with a top-level version key) and commits the change.

The increment is chosen from the triggering event:
  - pull_request: the first of the labels major, minor, patch present on the PR
  - push (with enable_on_commit): the first commit message mentioning
    major, minor or patch, case-insensitively

Inside GitHub Actions the settings come from the action inputs
(INPUT_ENABLE_ON_COMMIT, INPUT_INCREMENT_BUILD, ...) and the result is written
to the new_version step output. Outside Actions the change is not committed
unless --ci is given.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, opts)
		},
	}

	addBumpFlags(cmd, opts)

	cmd.AddCommand(newLabelCommand())
	cmd.AddCommand(newNextCommand())

	return cmd
}

func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()

	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
