package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rubrical-studios/pubspec-bump/internal/actions"
	"github.com/rubrical-studios/pubspec-bump/internal/defaults"
	"github.com/rubrical-studios/pubspec-bump/internal/manifest"
	"gopkg.in/yaml.v3"
)

// Config represents the .pubspec-bump.yml configuration file
type Config struct {
	Manifest       string `yaml:"manifest,omitempty"`
	EnableOnCommit bool   `yaml:"enable_on_commit"`
	IncrementBuild bool   `yaml:"increment_build"`
	Label          string `yaml:"label,omitempty"`
	Git            Git    `yaml:"git,omitempty"`
}

// Git contains settings for the commit-and-push step
type Git struct {
	UserName      string `yaml:"user_name,omitempty"`
	UserEmail     string `yaml:"user_email,omitempty"`
	CommitMessage string `yaml:"commit_message,omitempty"`
	Global        *bool  `yaml:"global,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
}

// ConfigFileName is the default configuration file name
const ConfigFileName = ".pubspec-bump.yml"

// VersionPlaceholder is replaced with the new version in the commit message
const VersionPlaceholder = "{version}"

// ErrNoConfigFile is returned by FindConfigFile when no config file exists
var ErrNoConfigFile = errors.New("no " + ConfigFileName + " found")

// Action input names
const (
	InputManifestPath   = "manifest_path"
	InputEnableOnCommit = "enable_on_commit"
	InputIncrementBuild = "increment_build"
	InputLabel          = "label"
	InputCommitMessage  = "commit_message"
	InputGitHubToken    = "github_token"
)

// Default returns the built-in configuration
func Default() *Config {
	var cfg Config
	d := defaults.MustLoad()
	if err := d.Config.Decode(&cfg); err != nil {
		panic("failed to decode embedded config defaults: " + err.Error())
	}
	return &cfg
}

// Load reads a configuration file over the built-in defaults.
// Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadFromDirectory finds and loads the config file from the given directory.
// When no file exists up to the filesystem root the defaults are returned.
func LoadFromDirectory(dir string) (*Config, error) {
	configPath, err := FindConfigFile(dir)
	if errors.Is(err, ErrNoConfigFile) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(configPath)
}

// FindConfigFile searches for .pubspec-bump.yml starting from dir and walking up
// the directory tree until found or filesystem root is reached.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoConfigFile, startDir)
		}
		dir = parent
	}
}

// Inputs provides action input values by name
type Inputs interface {
	Input(name string) string
}

// ApplyInputs applies non-empty action inputs to the config.
// Supported inputs:
//   - manifest_path: overrides manifest
//   - enable_on_commit, increment_build: "true" enables, any other value disables
//   - label: overrides label
//   - commit_message: overrides git.commit_message
func (c *Config) ApplyInputs(in Inputs) {
	if v := in.Input(InputManifestPath); v != "" {
		c.Manifest = v
	}
	if v := in.Input(InputEnableOnCommit); v != "" {
		c.EnableOnCommit = actions.ParseBool(v)
	}
	if v := in.Input(InputIncrementBuild); v != "" {
		c.IncrementBuild = actions.ParseBool(v)
	}
	if v := in.Input(InputLabel); v != "" {
		c.Label = v
	}
	if v := in.Input(InputCommitMessage); v != "" {
		c.Git.CommitMessage = v
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Git.UserName) == "" {
		return fmt.Errorf("git.user_name is required")
	}

	if strings.TrimSpace(c.Git.UserEmail) == "" {
		return fmt.Errorf("git.user_email is required")
	}

	if c.Git.Timeout != "" {
		d, err := time.ParseDuration(c.Git.Timeout)
		if err != nil {
			return fmt.Errorf("invalid git.timeout %q: %w", c.Git.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("git.timeout must be positive, got %s", c.Git.Timeout)
		}
	}

	return nil
}

// ManifestPath returns the manifest location (default: ./pubspec.yaml)
func (c *Config) ManifestPath() string {
	if c.Manifest == "" {
		return manifest.DefaultPath
	}
	return c.Manifest
}

// CommitMessage renders the commit message for a new version.
// A template without a placeholder gets the version appended.
func (c *Config) CommitMessage(version string) string {
	tmpl := c.Git.CommitMessage
	if tmpl == "" {
		tmpl = "chore: increment version to " + VersionPlaceholder
	}
	if !strings.Contains(tmpl, VersionPlaceholder) {
		return tmpl + " " + version
	}
	return strings.ReplaceAll(tmpl, VersionPlaceholder, version)
}

// GitTimeout returns the per-command git timeout (default: 60s)
func (c *Config) GitTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Git.Timeout); err == nil && d > 0 {
		return d
	}
	return 60 * time.Second
}

// GitGlobal returns whether the identity is written to the global git config (default: true)
func (c *Config) GitGlobal() bool {
	if c.Git.Global == nil {
		return true
	}
	return *c.Git.Global
}
