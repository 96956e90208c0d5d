package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rubrical-studios/pubspec-bump/internal/actions"
	"github.com/rubrical-studios/pubspec-bump/internal/ui"
	"github.com/spf13/cobra"
)

// reporter is where a run sends its notices, its failure message and its outputs.
// Inside Actions it speaks workflow commands; elsewhere it prints coloured lines.
type reporter interface {
	// Step reports progress. Actions only shows it with step debugging on.
	Step(msg string)
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Failed(msg string)
	SetOutput(name, value string) error
}

func newReporter(cmd *cobra.Command, env actions.Env) reporter {
	if env.IsActions() {
		return &actionsReporter{
			cmds:       actions.NewCommands(cmd.OutOrStdout()),
			outputPath: env.OutputPath(),
			stdout:     cmd.OutOrStdout(),
		}
	}
	return &consoleReporter{
		out:    ui.New(cmd.OutOrStdout()),
		errOut: ui.New(cmd.ErrOrStderr()),
		stdout: cmd.OutOrStdout(),
	}
}

// actionsReporter reports through workflow commands and the GITHUB_OUTPUT file
type actionsReporter struct {
	cmds       *actions.Commands
	outputPath string
	stdout     io.Writer
}

func (r *actionsReporter) Step(msg string)    { r.cmds.Debug(msg) }
func (r *actionsReporter) Info(msg string)    { r.cmds.Info(msg) }
func (r *actionsReporter) Success(msg string) { r.cmds.Notice(msg) }
func (r *actionsReporter) Warning(msg string) { r.cmds.Warning(msg) }
func (r *actionsReporter) Failed(msg string)  { r.cmds.Error(msg) }

func (r *actionsReporter) SetOutput(name, value string) error {
	if r.outputPath == "" {
		fmt.Fprintf(r.stdout, "%s=%s\n", name, value)
		return nil
	}
	return actions.WriteOutput(r.outputPath, name, value)
}

// consoleReporter reports to a terminal
type consoleReporter struct {
	out    *ui.UI
	errOut *ui.UI
	stdout io.Writer
}

func (r *consoleReporter) Step(msg string)    { r.out.Step(msg) }
func (r *consoleReporter) Info(msg string)    { r.out.Info(msg) }
func (r *consoleReporter) Success(msg string) { r.out.Success(msg) }
func (r *consoleReporter) Warning(msg string) { r.out.Warning(msg) }
func (r *consoleReporter) Failed(msg string)  { r.errOut.Error(msg) }

func (r *consoleReporter) SetOutput(name, value string) error {
	fmt.Fprintf(r.stdout, "%s=%s\n", name, value)
	return nil
}

// reportedError marks an error whose message was already sent to a reporter
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail reports err as the run's single failure message and marks it reported
func fail(rep reporter, err error) error {
	var already *reportedError
	if errors.As(err, &already) {
		return err
	}
	rep.Failed(err.Error())
	return &reportedError{err: err}
}
