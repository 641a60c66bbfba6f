// Package local implements host.Host for running outside the editor: npm in
// a private work directory, node from the configuration or PATH, and
// settings kept in YAML files.
package local

import (
	"context"
	"os/exec"

	"github.com/thoreinstein/sentry-mcp/internal/config"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/npm"
	"github.com/thoreinstein/sentry-mcp/internal/paths"
)

var _ host.Host = (*Host)(nil)

// ErrNodeNotFound is returned when no node binary is configured or on PATH.
var ErrNodeNotFound = errors.New("node runtime not found")

// Host is a host.Host backed by the local machine.
type Host struct {
	registry npm.Registry
	workDir  string
	nodePath string
	lookPath func(string) (string, error)
	store    *Store
}

// Option configures a Host.
type Option func(*Host)

// WithRegistry replaces the npm registry.
func WithRegistry(r npm.Registry) Option {
	return func(h *Host) {
		h.registry = r
	}
}

// WithLookPath replaces exec.LookPath for locating node.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(h *Host) {
		h.lookPath = fn
	}
}

// WithStore replaces the settings store.
func WithStore(s *Store) Option {
	return func(h *Host) {
		h.store = s
	}
}

// New creates a Host from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Host {
	if cfg == nil {
		cfg = config.Default()
	}
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = paths.DefaultWorkDir()
	}
	h := &Host{
		workDir:  workDir,
		nodePath: cfg.NodePath,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = npm.NewCLI(cfg.NPMPath, workDir)
	}
	if h.store == nil {
		h.store = NewStore(paths.GlobalSettingsFile())
	}
	return h
}

// WorkDir is the directory packages are installed into.
func (h *Host) WorkDir() string { return h.workDir }

// Store returns the settings store.
func (h *Host) Store() *Store { return h.store }

// LatestVersion implements host.Host.
func (h *Host) LatestVersion(ctx context.Context, pkg string) (string, error) {
	return h.registry.LatestVersion(ctx, pkg)
}

// InstalledVersion implements host.Host.
func (h *Host) InstalledVersion(ctx context.Context, pkg string) (string, bool, error) {
	return h.registry.InstalledVersion(ctx, pkg)
}

// Install implements host.Host.
func (h *Host) Install(ctx context.Context, pkg, version string) error {
	return h.registry.Install(ctx, pkg, version)
}

// NodeBinaryPath returns the configured node_path, or node from PATH.
func (h *Host) NodeBinaryPath(_ context.Context) (string, error) {
	if h.nodePath != "" {
		return h.nodePath, nil
	}
	p, err := h.lookPath("node")
	if err != nil {
		return "", errors.WithHint(
			errors.Mark(errors.Wrap(err, "locating node"), ErrNodeNotFound),
			"Install Node.js or set node_path in the sentry-mcp config file.",
		)
	}
	return p, nil
}

// ContextServerSettings implements host.Host using the settings store.
func (h *Host) ContextServerSettings(_ context.Context, serverID string, project host.Project) (any, bool, error) {
	return h.store.Lookup(serverID, project)
}
