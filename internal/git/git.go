// Package git drives the git command line for the commit-and-push step.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cli/safeexec"
)

// DefaultTimeout bounds each git invocation
const DefaultTimeout = 60 * time.Second

// Client is the version control capability used after the manifest is rewritten.
// Callers invoke the methods in order and wait for each before starting the next.
type Client interface {
	// ConfigureIdentity sets user.name and then user.email
	ConfigureIdentity(ctx context.Context, name, email string) error
	// Stage adds a path to the index
	Stage(ctx context.Context, path string) error
	// Commit records the index with the given message
	Commit(ctx context.Context, message string) error
	// Push pushes the current branch to its upstream
	Push(ctx context.Context) error
}

// CommandError is returned when a git invocation fails
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return "Error: " + e.Stderr
	}
	return "Error: " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// runner executes a binary and returns its trimmed stdout and stderr
type runner func(ctx context.Context, dir, bin string, args ...string) (string, string, error)

// Options configures an ExecClient
type Options struct {
	// Dir is the working directory for git commands (default: current directory)
	Dir string

	// Timeout bounds each command (default: DefaultTimeout)
	Timeout time.Duration

	// Global writes the identity to the global git config instead of the repository's
	Global bool
}

// ExecClient implements Client by running the git binary
type ExecClient struct {
	bin  string
	opts Options
	run  runner
}

// NewExecClient locates git on PATH and returns a client for it
func NewExecClient(opts Options) (*ExecClient, error) {
	bin, err := safeexec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found: %w", err)
	}
	return newClientWithRunner(bin, opts, execRunner), nil
}

func newClientWithRunner(bin string, opts Options, run runner) *ExecClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &ExecClient{bin: bin, opts: opts, run: run}
}

// ConfigureIdentity sets the committer identity
func (c *ExecClient) ConfigureIdentity(ctx context.Context, name, email string) error {
	scope := []string{"config"}
	if c.opts.Global {
		scope = append(scope, "--global")
	}
	if _, err := c.git(ctx, append(scope, "user.name", name)...); err != nil {
		return err
	}
	_, err := c.git(ctx, append(scope, "user.email", email)...)
	return err
}

// Stage adds path to the index
func (c *ExecClient) Stage(ctx context.Context, path string) error {
	_, err := c.git(ctx, "add", path)
	return err
}

// Commit creates a commit with message
func (c *ExecClient) Commit(ctx context.Context, message string) error {
	_, err := c.git(ctx, "commit", "-m", message)
	return err
}

// Push pushes to the configured upstream
func (c *ExecClient) Push(ctx context.Context) error {
	_, err := c.git(ctx, "push")
	return err
}

func (c *ExecClient) git(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	stdout, stderr, err := c.run(ctx, c.opts.Dir, c.bin, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("git %s timed out after %v", args[0], c.opts.Timeout)
		}
		return "", &CommandError{Args: args, Stderr: stderr, Err: err}
	}
	return stdout, nil
}

func execRunner(ctx context.Context, dir, bin string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err
}
