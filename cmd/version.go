// Package cmd contains build-time variables injected via ldflags:
//
//	-X github.com/thoreinstein/sentry-mcp/cmd.Version=v1.2.3
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// IsDev reports whether this is an unreleased local build.
func IsDev() bool {
	return Version == "" || Version == "dev"
}

// Summary is the one-line version string.
func Summary() string {
	return fmt.Sprintf("sentry-mcp %s (commit %s, built %s)", Version, Commit, Date)
}
