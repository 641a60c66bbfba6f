package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thoreinstein/sentry-mcp/internal/configuration"
	"github.com/thoreinstein/sentry-mcp/internal/credential"
	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/npm"
	"github.com/thoreinstein/sentry-mcp/internal/redact"
	"github.com/thoreinstein/sentry-mcp/internal/settings"
)

// Check categories.
const (
	CategoryRuntime  = "runtime"
	CategoryPackage  = "package"
	CategorySettings = "settings"
	CategoryFiles    = "filesystem"
)

// NodeCheck verifies a node binary can be located.
type NodeCheck struct {
	locate func(context.Context) (string, error)
}

var _ Check = (*NodeCheck)(nil)

// NewNodeCheck creates a check using locate, usually a host's
// NodeBinaryPath.
func NewNodeCheck(locate func(context.Context) (string, error)) *NodeCheck {
	return &NodeCheck{locate: locate}
}

// Name returns the unique identifier for this check.
func (c *NodeCheck) Name() string { return "node" }

// Category returns the grouping for this check.
func (c *NodeCheck) Category() string { return CategoryRuntime }

// Run executes the check.
func (c *NodeCheck) Run(ctx context.Context) *CheckResult {
	p, err := c.locate(ctx)
	if err != nil {
		r := newResult(c, SeverityError, "node runtime not found")
		r.Details = map[string]any{"error": err.Error()}
		r.FixHint = "install Node.js or set node_path in the config file"
		return r
	}
	r := newResult(c, SeverityPass, "node runtime found")
	r.Details = map[string]any{"path": p}
	return r
}

// NPMCheck verifies the npm executable is available.
type NPMCheck struct {
	npmPath  string
	lookPath func(string) (string, error)
}

var _ Check = (*NPMCheck)(nil)

// NewNPMCheck creates a check for npmPath ("npm" when empty).
func NewNPMCheck(npmPath string) *NPMCheck {
	if npmPath == "" {
		npmPath = "npm"
	}
	return &NPMCheck{npmPath: npmPath, lookPath: exec.LookPath}
}

// Name returns the unique identifier for this check.
func (c *NPMCheck) Name() string { return "npm" }

// Category returns the grouping for this check.
func (c *NPMCheck) Category() string { return CategoryRuntime }

// Run executes the check.
func (c *NPMCheck) Run(_ context.Context) *CheckResult {
	p, err := c.lookPath(c.npmPath)
	if err != nil {
		r := newResult(c, SeverityError, fmt.Sprintf("%s not found", c.npmPath))
		r.FixHint = "install npm or set npm_path in the config file"
		return r
	}
	r := newResult(c, SeverityPass, "npm found")
	r.Details = map[string]any{"path": p}
	return r
}

// PackageCheck compares the installed package version with the latest one.
type PackageCheck struct {
	registry npm.Registry
	pkg      string
}

var _ Check = (*PackageCheck)(nil)

// NewPackageCheck creates a check for pkg.
func NewPackageCheck(reg npm.Registry, pkg string) *PackageCheck {
	return &PackageCheck{registry: reg, pkg: pkg}
}

// Name returns the unique identifier for this check.
func (c *PackageCheck) Name() string { return "package-version" }

// Category returns the grouping for this check.
func (c *PackageCheck) Category() string { return CategoryPackage }

// Run executes the check. It never installs anything.
func (c *PackageCheck) Run(ctx context.Context) *CheckResult {
	installed, ok, err := c.registry.InstalledVersion(ctx, c.pkg)
	if err != nil {
		r := newResult(c, SeverityError, "cannot read installed version")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}

	latest, err := c.registry.LatestVersion(ctx, c.pkg)
	if err != nil {
		r := newResult(c, SeverityWarning, "cannot query latest version")
		r.Details = map[string]any{"error": err.Error(), "installed": installed}
		r.FixHint = "check network access to the npm registry"
		return r
	}

	details := map[string]any{"package": c.pkg, "latest": latest}
	switch {
	case !ok:
		r := newResult(c, SeverityWarning, c.pkg+" is not installed")
		r.Details = details
		r.FixHint = "it is installed on the next launch; run: sentry-mcp command"
		return r
	case installed != latest:
		details["installed"] = installed
		r := newResult(c, SeverityInfo, fmt.Sprintf("update available: %s -> %s", installed, latest))
		r.Details = details
		return r
	default:
		details["installed"] = installed
		r := newResult(c, SeverityPass, c.pkg+" "+installed+" is current")
		r.Details = details
		return r
	}
}

// SettingsSchemaCheck validates the stored settings against the settings
// schema.
type SettingsSchemaCheck struct {
	src      settings.Source
	serverID string
	project  host.Project
}

var _ Check = (*SettingsSchemaCheck)(nil)

// NewSettingsSchemaCheck creates a check over the settings for serverID.
func NewSettingsSchemaCheck(src settings.Source, serverID string, project host.Project) *SettingsSchemaCheck {
	return &SettingsSchemaCheck{src: src, serverID: serverID, project: project}
}

// Name returns the unique identifier for this check.
func (c *SettingsSchemaCheck) Name() string { return "settings-schema" }

// Category returns the grouping for this check.
func (c *SettingsSchemaCheck) Category() string { return CategorySettings }

// Run executes the check.
func (c *SettingsSchemaCheck) Run(ctx context.Context) *CheckResult {
	raw, ok, err := c.src.ContextServerSettings(ctx, c.serverID, c.project)
	if err != nil {
		r := newResult(c, SeverityError, "cannot read settings")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}
	if !ok {
		r := newResult(c, SeverityWarning, "no settings stored")
		r.FixHint = "run: sentry-mcp settings set-token"
		return r
	}

	errs := configuration.ValidateSettings(raw)
	if len(errs) == 0 {
		return newResult(c, SeverityPass, "settings match schema")
	}
	violations := make([]string, len(errs))
	for i, e := range errs {
		violations[i] = e.Error()
	}
	r := newResult(c, SeverityError, "settings do not match schema: "+strings.Join(violations, "; "))
	r.Details = map[string]any{"violations": violations}
	r.FixHint = "run: sentry-mcp settings edit"
	return r
}

// TokenCheck verifies a non-blank access token is configured.
type TokenCheck struct {
	src      settings.Source
	serverID string
	project  host.Project
}

var _ Check = (*TokenCheck)(nil)

// NewTokenCheck creates a check over the settings for serverID.
func NewTokenCheck(src settings.Source, serverID string, project host.Project) *TokenCheck {
	return &TokenCheck{src: src, serverID: serverID, project: project}
}

// Name returns the unique identifier for this check.
func (c *TokenCheck) Name() string { return "access-token" }

// Category returns the grouping for this check.
func (c *TokenCheck) Category() string { return CategorySettings }

// Run executes the check. The token itself never appears in the result.
func (c *TokenCheck) Run(ctx context.Context) *CheckResult {
	s, err := settings.Load(ctx, c.src, c.serverID, c.project)
	if err != nil {
		r := newResult(c, SeverityError, err.Error())
		r.FixHint = "run: sentry-mcp settings edit"
		return r
	}
	token, err := credential.RequiredAccessToken(s)
	if err != nil {
		r := newResult(c, SeverityError, err.Error())
		r.FixHint = "run: sentry-mcp settings set-token"
		return r
	}
	r := newResult(c, SeverityPass, "access token configured")
	r.Details = map[string]any{"token": redact.MaskValue(token)}
	return r
}

// Inspector lists entrypoint candidates.
type Inspector interface {
	Inspect() []entrypoint.Candidate
}

// EntrypointCheck verifies an entrypoint candidate exists.
type EntrypointCheck struct {
	inspector Inspector
}

var _ Check = (*EntrypointCheck)(nil)

// NewEntrypointCheck creates a check over the candidates of i.
func NewEntrypointCheck(i Inspector) *EntrypointCheck {
	return &EntrypointCheck{inspector: i}
}

// Name returns the unique identifier for this check.
func (c *EntrypointCheck) Name() string { return "entrypoint" }

// Category returns the grouping for this check.
func (c *EntrypointCheck) Category() string { return CategoryPackage }

// Run executes the check.
func (c *EntrypointCheck) Run(_ context.Context) *CheckResult {
	candidates := c.inspector.Inspect()
	searched := make([]string, len(candidates))
	for i, cand := range candidates {
		searched[i] = cand.Path
		if cand.Exists {
			r := newResult(c, SeverityPass, "entrypoint found")
			r.Details = map[string]any{"path": cand.Path, "source": cand.Source}
			return r
		}
	}
	r := newResult(c, SeverityWarning, entrypoint.NotFoundMessage)
	r.Details = map[string]any{"searched": searched}
	r.FixHint = "run: sentry-mcp paths"
	return r
}
