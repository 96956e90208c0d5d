// Package version provides the pubspec-bump release version.
// The Version constant is updated by the release workflow.
package version

// Version is the current pubspec-bump version.
const Version = "0.3.0"
