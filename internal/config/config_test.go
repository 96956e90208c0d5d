package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rubrical-studios/pubspec-bump/internal/actions"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ManifestPath() != "./pubspec.yaml" {
		t.Errorf("ManifestPath() = %q, want ./pubspec.yaml", cfg.ManifestPath())
	}
	if cfg.EnableOnCommit || cfg.IncrementBuild {
		t.Error("Expected enable_on_commit and increment_build to default to false")
	}
	if cfg.Git.UserName != "github-actions[bot]" {
		t.Errorf("Git.UserName = %q", cfg.Git.UserName)
	}
	if cfg.Git.UserEmail != "github-actions[bot]@users.noreply.github.com" {
		t.Errorf("Git.UserEmail = %q", cfg.Git.UserEmail)
	}
	if !cfg.GitGlobal() {
		t.Error("Expected global git identity by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
manifest: app/pubspec.yaml
increment_build: true
git:
  commit_message: "release: {version}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ManifestPath() != "app/pubspec.yaml" {
		t.Errorf("ManifestPath() = %q", cfg.ManifestPath())
	}
	if !cfg.IncrementBuild {
		t.Error("Expected increment_build from file")
	}
	if got := cfg.CommitMessage("2.0.0"); got != "release: 2.0.0" {
		t.Errorf("CommitMessage() = %q", got)
	}
	// Keys absent from the file keep their defaults
	if cfg.Git.UserName != "github-actions[bot]" {
		t.Errorf("Expected default user name to survive, got %q", cfg.Git.UserName)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := writeConfig(t, t.TempDir(), "manifest: [unterminated\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got: %v", err)
	}
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "label: patch\n")

	nested := filepath.Join(root, "packages", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile() error: %v", err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Errorf("FindConfigFile() = %q, want %q", got, wantAbs)
	}
}

func TestLoadFromDirectory_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	if _, err := FindConfigFile(dir); !errors.Is(err, ErrNoConfigFile) {
		t.Skipf("A %s exists above the temp dir", ConfigFileName)
	}

	cfg, err := LoadFromDirectory(dir)
	if err != nil {
		t.Fatalf("LoadFromDirectory() error: %v", err)
	}
	if cfg.ManifestPath() != "./pubspec.yaml" {
		t.Errorf("Expected defaults, got manifest %q", cfg.ManifestPath())
	}
}

func TestApplyInputs(t *testing.T) {
	cfg := Default()
	cfg.IncrementBuild = true

	cfg.ApplyInputs(actions.MapEnv(map[string]string{
		"INPUT_MANIFEST_PATH":    "other/pubspec.yaml",
		"INPUT_ENABLE_ON_COMMIT": "true",
		"INPUT_INCREMENT_BUILD":  "false",
		"INPUT_LABEL":            "minor",
		"INPUT_COMMIT_MESSAGE":   "bump {version}",
	}))

	if cfg.ManifestPath() != "other/pubspec.yaml" {
		t.Errorf("ManifestPath() = %q", cfg.ManifestPath())
	}
	if !cfg.EnableOnCommit {
		t.Error("Expected enable_on_commit from input")
	}
	if cfg.IncrementBuild {
		t.Error("Expected increment_build=false input to disable the file setting")
	}
	if cfg.Label != "minor" {
		t.Errorf("Label = %q", cfg.Label)
	}
	if got := cfg.CommitMessage("1.2.3"); got != "bump 1.2.3" {
		t.Errorf("CommitMessage() = %q", got)
	}
}

func TestApplyInputs_EmptyKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.IncrementBuild = true

	cfg.ApplyInputs(actions.MapEnv(nil))

	if !cfg.IncrementBuild {
		t.Error("Unset input should not change increment_build")
	}
}

func TestCommitMessage(t *testing.T) {
	cfg := &Config{}
	if got := cfg.CommitMessage("1.0.1"); got != "chore: increment version to 1.0.1" {
		t.Errorf("default CommitMessage() = %q", got)
	}

	cfg.Git.CommitMessage = "release"
	if got := cfg.CommitMessage("1.0.1"); got != "release 1.0.1" {
		t.Errorf("CommitMessage() without placeholder = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing user name", func(c *Config) { c.Git.UserName = "" }, "git.user_name is required"},
		{"missing user email", func(c *Config) { c.Git.UserEmail = " " }, "git.user_email is required"},
		{"bad timeout", func(c *Config) { c.Git.Timeout = "soon" }, "invalid git.timeout"},
		{"negative timeout", func(c *Config) { c.Git.Timeout = "-1s" }, "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGitTimeout(t *testing.T) {
	cfg := &Config{}
	if cfg.GitTimeout() != 60*time.Second {
		t.Errorf("default GitTimeout() = %v", cfg.GitTimeout())
	}
	cfg.Git.Timeout = "5s"
	if cfg.GitTimeout() != 5*time.Second {
		t.Errorf("GitTimeout() = %v", cfg.GitTimeout())
	}
}

func TestGitGlobal_Explicit(t *testing.T) {
	local := false
	cfg := &Config{Git: Git{Global: &local}}
	if cfg.GitGlobal() {
		t.Error("Expected explicit global: false to be honoured")
	}
}
