// Package npm keeps the npm package that provides the context server
// installed at its latest published version.
package npm

import (
	"context"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

// Registry is the package-management side of the host.
type Registry interface {
	LatestVersion(ctx context.Context, pkg string) (string, error)
	InstalledVersion(ctx context.Context, pkg string) (version string, ok bool, err error)
	Install(ctx context.Context, pkg, version string) error
}

// Action describes what EnsureInstalled did.
type Action string

// Actions reported in Result.
const (
	ActionNone      Action = "none"
	ActionInstall   Action = "install"
	ActionUpgrade   Action = "upgrade"
	ActionDowngrade Action = "downgrade"
	ActionReinstall Action = "reinstall"
)

// Result records the version state observed by EnsureInstalled.
type Result struct {
	Package   string
	Latest    string
	Installed string // empty when the package was absent
	Action    Action
}

// Changed reports whether an install was performed.
func (r *Result) Changed() bool {
	return r.Action != ActionNone
}

// EnsureInstalled makes sure pkg is installed at its latest version.
//
// The latest and installed versions are compared as plain strings; when the
// package is absent or the strings differ, exactly one Install call is made
// with the latest version. Errors from reg are returned unchanged and nothing
// is retried.
func EnsureInstalled(ctx context.Context, reg Registry, pkg string) (*Result, error) {
	logger := logging.FromContext(ctx).With(logging.Package(pkg))

	latest, err := reg.LatestVersion(ctx, pkg)
	if err != nil {
		return nil, err
	}
	installed, ok, err := reg.InstalledVersion(ctx, pkg)
	if err != nil {
		return nil, err
	}

	res := &Result{Package: pkg, Latest: latest, Action: ActionNone}
	if ok {
		res.Installed = installed
	}

	if ok && installed == latest {
		logger.Debug("package is current", logging.Version(latest))
		return res, nil
	}

	res.Action = classify(installed, ok, latest)
	logger.Info("installing package",
		logging.Version(latest),
		slog.String("installed", res.Installed),
		slog.String("action", string(res.Action)))

	if err := reg.Install(ctx, pkg, latest); err != nil {
		return nil, err
	}
	return res, nil
}

// classify names the version change for logs. It never influences whether
// an install happens.
func classify(installed string, present bool, latest string) Action {
	if !present {
		return ActionInstall
	}
	from, err := semver.NewVersion(installed)
	if err != nil {
		return ActionReinstall
	}
	to, err := semver.NewVersion(latest)
	if err != nil {
		return ActionReinstall
	}
	switch from.Compare(to) {
	case -1:
		return ActionUpgrade
	case 1:
		return ActionDowngrade
	default:
		return ActionReinstall
	}
}
