// Package host defines the boundary between the resolution pipeline and the
// editor (or CLI) that hosts it.
//
// The pipeline never touches npm, the settings store or the node runtime
// directly; it calls these operations on a Host. Failures returned by a Host
// are propagated to the caller unchanged.
package host

import (
	"context"
)

// Project identifies the project a context server is requested for.
type Project struct {
	// Root is the project's root directory. It may be empty when the request
	// is not tied to a project.
	Root string
}

// Host is the set of services the pipeline consumes.
type Host interface {
	// LatestVersion returns the latest published version of pkg.
	LatestVersion(ctx context.Context, pkg string) (string, error)

	// InstalledVersion returns the installed version of pkg; ok is false when
	// the package is not installed.
	InstalledVersion(ctx context.Context, pkg string) (version string, ok bool, err error)

	// Install installs or updates pkg to version.
	Install(ctx context.Context, pkg, version string) error

	// NodeBinaryPath returns the path of the JavaScript runtime binary.
	NodeBinaryPath(ctx context.Context) (string, error)

	// ContextServerSettings returns the opaque settings value stored for
	// serverID in project; ok is false when nothing is stored.
	ContextServerSettings(ctx context.Context, serverID string, project Project) (value any, ok bool, err error)
}
