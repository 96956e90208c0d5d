// Package actions implements the small part of the GitHub Actions runtime
// contract this tool needs: inputs, the event payload, workflow commands and
// step outputs.
package actions

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInputRequired is returned by RequiredInput when an input is empty
var ErrInputRequired = errors.New("Input required and not supplied")

// Env looks up environment variables. OSEnv reads the process environment.
type Env func(key string) string

// OSEnv is the process environment
var OSEnv Env = os.Getenv

// MapEnv returns an Env backed by a map, for tests and dry runs
func MapEnv(m map[string]string) Env {
	return func(key string) string {
		return m[key]
	}
}

// InputKey returns the environment variable carrying an action input
func InputKey(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Input returns the trimmed value of an action input, or "" when unset
func (e Env) Input(name string) string {
	return strings.TrimSpace(e(InputKey(name)))
}

// RequiredInput returns an input value or ErrInputRequired when it is empty
func (e Env) RequiredInput(name string) (string, error) {
	v := e.Input(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, name)
	}
	return v, nil
}

// ParseBool accepts true, True and TRUE. Everything else is false.
func ParseBool(s string) bool {
	switch s {
	case "true", "True", "TRUE":
		return true
	}
	return false
}

// IsActions reports whether the process runs inside a GitHub Actions job
func (e Env) IsActions() bool {
	return e("GITHUB_ACTIONS") == "true"
}

// EventName returns the name of the triggering event
func (e Env) EventName() string {
	return e("GITHUB_EVENT_NAME")
}

// EventPath returns the path of the event payload file
func (e Env) EventPath() string {
	return e("GITHUB_EVENT_PATH")
}

// OutputPath returns the file step outputs are appended to
func (e Env) OutputPath() string {
	return e("GITHUB_OUTPUT")
}

// Repository returns the owner/repo slug of the workflow's repository
func (e Env) Repository() string {
	return e("GITHUB_REPOSITORY")
}
