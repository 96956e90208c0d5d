package cmd

import (
	"context"
	"fmt"

	"github.com/rubrical-studios/pubspec-bump/internal/actions"
	"github.com/rubrical-studios/pubspec-bump/internal/bump"
	"github.com/rubrical-studios/pubspec-bump/internal/config"
	"github.com/rubrical-studios/pubspec-bump/internal/git"
	"github.com/rubrical-studios/pubspec-bump/internal/manifest"
	"github.com/spf13/cobra"
)

// OutputNewVersion is the step output carrying the resulting version
const OutputNewVersion = "new_version"

type bumpOptions struct {
	configPath     string
	eventName      string
	eventPath      string
	manifestPath   string
	commitMessage  string
	token          string
	incrementBuild bool
	enableOnCommit bool
	ci             bool
	dryRun         bool
}

// bumpState is the stage a run reached
type bumpState int

const (
	stateStart bumpState = iota
	stateResolving
	stateMutating
	statePersisting
	stateCommitting
	stateDone
	stateFailed
)

func (s bumpState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateResolving:
		return "resolving"
	case stateMutating:
		return "mutating"
	case statePersisting:
		return "persisting"
	case stateCommitting:
		return "committing"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	}
	return fmt.Sprintf("bumpState(%d)", int(s))
}

// bumpResult describes the outcome of a run
type bumpResult struct {
	State      bumpState
	Kind       bump.Kind
	OldVersion string
	NewVersion string
	Committed  bool
	Pushed     bool
}

func addBumpFlags(cmd *cobra.Command, opts *bumpOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to "+config.ConfigFileName+" (default: search from the working directory up)")
	cmd.Flags().StringVar(&opts.eventName, "event", "", "Event name (default: $GITHUB_EVENT_NAME)")
	cmd.Flags().StringVar(&opts.eventPath, "event-path", "", "Path to the event payload JSON (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().StringVarP(&opts.manifestPath, "manifest", "m", "", "Manifest to update (default: ./pubspec.yaml)")
	cmd.Flags().StringVar(&opts.commitMessage, "commit-message", "", "Commit message template, {version} is replaced")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub token (default: the github_token input)")
	cmd.Flags().BoolVar(&opts.incrementBuild, "increment-build", false, "Increment the +build counter")
	cmd.Flags().BoolVar(&opts.enableOnCommit, "enable-on-commit", false, "Bump on push events from commit message keywords")
	cmd.Flags().BoolVar(&opts.ci, "ci", false, "Commit and push even when not running in GitHub Actions")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Compute the new version without writing or committing")
}

// loadConfig layers the config file and action inputs over the defaults
func loadConfig(configPath string, env actions.Env) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDirectory(".")
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyInputs(env)
	return cfg, nil
}

// loadEvent reads the event named by flags, falling back to the Actions environment
func loadEvent(name, path string, env actions.Env) (*actions.Event, error) {
	if name == "" {
		name = env.EventName()
	}
	if path == "" {
		path = env.EventPath()
	}
	return actions.LoadEvent(name, path)
}

// applyBumpFlags lets explicitly set flags win over file and input settings
func applyBumpFlags(cmd *cobra.Command, opts *bumpOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = opts.manifestPath
	}
	if flags.Changed("commit-message") {
		cfg.Git.CommitMessage = opts.commitMessage
	}
	if flags.Changed("increment-build") {
		cfg.IncrementBuild = opts.incrementBuild
	}
	if flags.Changed("enable-on-commit") {
		cfg.EnableOnCommit = opts.enableOnCommit
	}
}

// bumpDeps are the collaborators of a bump run
type bumpDeps struct {
	env    actions.Env
	report reporter
	// newGit is called once, when the run reaches the commit step
	newGit func() (git.Client, error)
}

func runBump(cmd *cobra.Command, opts *bumpOptions) error {
	env := actions.OSEnv
	rep := newReporter(cmd, env)

	cfg, err := loadConfig(opts.configPath, env)
	if err != nil {
		return fail(rep, err)
	}
	applyBumpFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return fail(rep, fmt.Errorf("invalid configuration: %w", err))
	}

	ev, err := loadEvent(opts.eventName, opts.eventPath, env)
	if err != nil {
		return fail(rep, err)
	}

	opts.ci = opts.ci || env.IsActions()

	deps := bumpDeps{
		env:    env,
		report: rep,
		newGit: func() (git.Client, error) {
			return git.NewExecClient(git.Options{
				Timeout: cfg.GitTimeout(),
				Global:  cfg.GitGlobal(),
			})
		},
	}

	_, err = runBumpWithDeps(cmd.Context(), opts, cfg, ev, deps)
	return err
}

// triggerFor classifies the event. Push events only count when enableOnCommit is set.
func triggerFor(ev *actions.Event, enableOnCommit bool) (bump.Trigger, error) {
	switch {
	case ev.IsPullRequest():
		pr, err := ev.PullRequest()
		if err != nil {
			return bump.Trigger{}, err
		}
		return bump.PullRequestTrigger(pr.LabelNames()), nil
	case ev.IsPush() && enableOnCommit:
		return bump.PushTrigger(ev.CommitMessages()), nil
	}
	return bump.Trigger{Kind: bump.TriggerOther}, nil
}

// reportNoAction emits the notice explaining why the trigger produced no increment
func reportNoAction(t bump.Trigger, rep reporter) {
	switch t.Kind {
	case bump.TriggerPullRequest:
		rep.Warning("No valid labels found. No action will be taken.")
	case bump.TriggerPush:
		if len(t.CommitMessages) == 0 {
			rep.Info("No commits found in push payload.")
			return
		}
		rep.Info("No keywords found in commits. No action will be taken.")
	default:
		rep.Info("No action taken. Event not configured.")
	}
}

// runBumpWithDeps contains the business logic for a bump run.
// deps.newGit is only called when the run commits.
func runBumpWithDeps(ctx context.Context, opts *bumpOptions, cfg *config.Config, ev *actions.Event, deps bumpDeps) (*bumpResult, error) {
	rep := deps.report
	res := &bumpResult{State: stateStart}
	failed := func(err error) (*bumpResult, error) {
		res.State = stateFailed
		return res, fail(rep, err)
	}

	trigger, err := triggerFor(ev, cfg.EnableOnCommit)
	if err != nil {
		return failed(err)
	}
	if trigger.Kind == bump.TriggerPush && opts.token == "" {
		if _, err := deps.env.RequiredInput(config.InputGitHubToken); err != nil {
			return failed(err)
		}
	}

	res.State = stateResolving
	rep.Step(fmt.Sprintf("Resolving increment from %s event", eventLabel(ev)))
	res.Kind = bump.Resolve(trigger)
	path := cfg.ManifestPath()

	if res.Kind == bump.None {
		reportNoAction(trigger, rep)
		if m, err := manifest.Load(path); err == nil {
			res.OldVersion = m.Version().String()
			res.NewVersion = res.OldVersion
		}
		return finish(res, rep)
	}

	res.State = stateMutating
	m, err := manifest.Load(path)
	if err != nil {
		return failed(err)
	}
	path = m.Path()
	current := m.Version()
	next := current.Next(res.Kind, cfg.IncrementBuild)
	res.OldVersion = current.String()
	res.NewVersion = next.String()
	m.SetVersion(next)

	if opts.dryRun {
		rep.Info(fmt.Sprintf("Dry run: %s would go from %s to %s (%s).", path, res.OldVersion, res.NewVersion, res.Kind))
		return finish(res, rep)
	}

	res.State = statePersisting
	if err := m.Save(); err != nil {
		return failed(err)
	}
	rep.Success(fmt.Sprintf("Updated %s from %s to %s (%s).", path, res.OldVersion, res.NewVersion, res.Kind))

	res.State = stateCommitting
	if !opts.ci {
		rep.Info("Not running in CI. Skipping commit and push.")
		return finish(res, rep)
	}
	if deps.newGit == nil {
		return failed(fmt.Errorf("git client not configured"))
	}
	gitClient, err := deps.newGit()
	if err != nil {
		return failed(err)
	}

	rep.Step(fmt.Sprintf("Committing %s as %s", path, cfg.Git.UserName))
	if err := gitClient.ConfigureIdentity(ctx, cfg.Git.UserName, cfg.Git.UserEmail); err != nil {
		return failed(err)
	}
	if err := gitClient.Stage(ctx, path); err != nil {
		return failed(err)
	}
	if err := gitClient.Commit(ctx, cfg.CommitMessage(res.NewVersion)); err != nil {
		return failed(err)
	}
	res.Committed = true

	if err := gitClient.Push(ctx); err != nil {
		rep.Warning(fmt.Sprintf("Failed to push: %v", err))
	} else {
		res.Pushed = true
	}

	return finish(res, rep)
}

// eventLabel names the event for progress lines
func eventLabel(ev *actions.Event) string {
	if ev.Name == "" {
		return "unnamed"
	}
	return ev.Name
}

func finish(res *bumpResult, rep reporter) (*bumpResult, error) {
	res.State = stateDone
	rep.Info(fmt.Sprintf("New version: %s", res.NewVersion))
	if err := rep.SetOutput(OutputNewVersion, res.NewVersion); err != nil {
		res.State = stateFailed
		return res, fail(rep, fmt.Errorf("failed to set output %s: %w", OutputNewVersion, err))
	}
	return res, nil
}
