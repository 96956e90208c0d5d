package cmd

import (
	"errors"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/rubrical-studios/pubspec-bump/internal/actions"
	"github.com/rubrical-studios/pubspec-bump/internal/api"
	"github.com/rubrical-studios/pubspec-bump/internal/config"
	"github.com/rubrical-studios/pubspec-bump/internal/defaults"
	"github.com/spf13/cobra"
)

// OutputLabel is the step output carrying the label that was applied
const OutputLabel = "label"

// labelMaxRetries bounds the rate-limit retries of the add call
const labelMaxRetries = 3

// labelRetryDelays is the backoff schedule for the add call
var labelRetryDelays = api.DefaultRetryDelays

type labelOptions struct {
	configPath string
	eventName  string
	eventPath  string
	label      string
	repo       string
	token      string
}

// labelClient defines the interface for API methods used by the label command.
// This allows mocking in tests.
type labelClient interface {
	GetLabelID(owner, repo, name string) (string, error)
	GetRepositoryID(owner, repo string) (string, error)
	CreateLabel(repositoryID, name, color, description string) (string, error)
	GetPullRequestID(owner, repo string, number int) (string, error)
	AddLabelsToLabelable(labelableID string, labelIDs []string) error
}

func newLabelCommand() *cobra.Command {
	opts := &labelOptions{}

	cmd := &cobra.Command{
		Use:   "label [name]",
		Short: "Add a label to the triggering pull request",
		Long: `Add a label to the pull request of the current pull_request event.

The label comes from the argument, the --label flag or the label input.
When the label does not exist in the repository and is one of the bump
labels (major, minor, patch) it is created with its default colour.
Events other than pull_request are ignored.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: defaults.MustLoad().GetLabelNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.label = args[0]
			}
			return runLabel(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to "+config.ConfigFileName)
	cmd.Flags().StringVar(&opts.eventName, "event", "", "Event name (default: $GITHUB_EVENT_NAME)")
	cmd.Flags().StringVar(&opts.eventPath, "event-path", "", "Path to the event payload JSON (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Label to add (default: the label input)")
	cmd.Flags().StringVarP(&opts.repo, "repo", "R", "", "Repository in [HOST/]OWNER/REPO form (default: from the event)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub token (default: github_token input, GH_TOKEN, GITHUB_TOKEN)")

	return cmd
}

func runLabel(cmd *cobra.Command, opts *labelOptions) error {
	env := actions.OSEnv
	rep := newReporter(cmd, env)

	cfg, err := loadConfig(opts.configPath, env)
	if err != nil {
		return fail(rep, err)
	}
	if opts.label != "" {
		cfg.Label = opts.label
	}

	ev, err := loadEvent(opts.eventName, opts.eventPath, env)
	if err != nil {
		return fail(rep, err)
	}

	pr, ok := labelTarget(cfg.Label, ev, rep)
	if !ok {
		return nil
	}

	repo, err := resolveRepository(opts.repo, ev, env)
	if err != nil {
		return fail(rep, err)
	}

	explicit := opts.token
	if explicit == "" {
		explicit = env.Input(config.InputGitHubToken)
	}
	token, err := api.ResolveToken(repo.Host, explicit)
	if err != nil {
		return fail(rep, err)
	}

	client, err := api.NewClient(api.ClientOptions{Host: repo.Host, AuthToken: token})
	if err != nil {
		return fail(rep, err)
	}

	return runLabelWithDeps(cfg.Label, pr, repo, client, rep)
}

// labelTarget returns the pull request to label, reporting why nothing is to be done
// when there is none
func labelTarget(label string, ev *actions.Event, rep reporter) (*actions.PullRequest, bool) {
	if label == "" {
		rep.Info("No label given. No action will be taken.")
		return nil, false
	}
	if !ev.IsPullRequest() {
		rep.Info("Not a pull request event. No label added.")
		return nil, false
	}
	pr, err := ev.PullRequest()
	if err != nil {
		rep.Info(err.Error())
		return nil, false
	}
	return pr, true
}

// resolveRepository picks the repository from the flag, the payload or GITHUB_REPOSITORY
func resolveRepository(flag string, ev *actions.Event, env actions.Env) (repository.Repository, error) {
	name := flag
	if name == "" && ev.Payload.Repository != nil {
		name = ev.Payload.Repository.FullName
	}
	if name == "" {
		name = env.Repository()
	}
	if name == "" {
		return repository.Repository{}, errors.New("could not determine repository; use --repo OWNER/REPO")
	}

	repo, err := repository.Parse(name)
	if err != nil {
		return repository.Repository{}, fmt.Errorf("invalid repository %q: %w", name, err)
	}
	return repo, nil
}

// runLabelWithDeps contains the business logic for labelling a pull request
func runLabelWithDeps(name string, pr *actions.PullRequest, repo repository.Repository, client labelClient, rep reporter) error {
	if pr.HasLabel(name) {
		rep.Info(fmt.Sprintf("Pull request #%d already has label %q.", pr.Number, name))
		return nil
	}

	labelID, err := client.GetLabelID(repo.Owner, repo.Name, name)
	if errors.Is(err, api.ErrNotFound) {
		labelID, err = createBumpLabel(name, repo, client)
		if err != nil {
			return fail(rep, labelFailure(err))
		}
		rep.Info(fmt.Sprintf("Created label %q in %s/%s.", name, repo.Owner, repo.Name))
	} else if err != nil {
		return fail(rep, labelFailure(err))
	}

	prID := pr.NodeID
	if prID == "" {
		prID, err = client.GetPullRequestID(repo.Owner, repo.Name, pr.Number)
		if err != nil {
			return fail(rep, labelFailure(err))
		}
	}

	err = api.WithRetryDelays(func() error {
		return client.AddLabelsToLabelable(prID, []string{labelID})
	}, labelMaxRetries, labelRetryDelays)
	if err != nil {
		return fail(rep, labelFailure(fmt.Errorf("failed to add label %q to pull request #%d: %w", name, pr.Number, err)))
	}

	rep.Success(fmt.Sprintf("Added label %q to pull request #%d.", name, pr.Number))
	if err := rep.SetOutput(OutputLabel, name); err != nil {
		return fail(rep, fmt.Errorf("failed to set output %s: %w", OutputLabel, err))
	}
	return nil
}

// labelFailure points authentication errors at the token
func labelFailure(err error) error {
	if api.IsAuthError(err) {
		return fmt.Errorf("%w (check that the github_token can write labels and pull requests)", err)
	}
	return err
}

// createBumpLabel creates one of the standard bump labels from its default definition
func createBumpLabel(name string, repo repository.Repository, client labelClient) (string, error) {
	d := defaults.MustLoad()
	if !d.IsBumpLabel(name) {
		return "", fmt.Errorf("label %q does not exist in %s/%s", name, repo.Owner, repo.Name)
	}
	def := d.GetLabel(name)

	repoID, err := client.GetRepositoryID(repo.Owner, repo.Name)
	if err != nil {
		return "", err
	}

	id, err := client.CreateLabel(repoID, def.Name, def.Color, def.Description)
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return id, nil
}
