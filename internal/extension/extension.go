// Package extension resolves the launch command and configuration surface
// for the Sentry MCP context server.
//
// ContextServerCommand runs a fixed sequence of stages and stops at the
// first failure:
//
//  1. identify: reject any server id other than mcp.ServerID
//  2. install: bring @sentry/mcp-server up to its latest version
//  3. settings: decode the stored settings value
//  4. credential: require a non-blank access token
//  5. entrypoint: locate the installed entry script
//  6. runtime: ask the host for the node binary
//  7. build: assemble the descriptor
//
// Nothing is cached between calls and no stage is retried.
package extension

import (
	"context"
	"log/slog"
	"time"

	"github.com/thoreinstein/sentry-mcp/internal/configuration"
	"github.com/thoreinstein/sentry-mcp/internal/credential"
	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
	"github.com/thoreinstein/sentry-mcp/internal/npm"
	"github.com/thoreinstein/sentry-mcp/internal/settings"
)

// Extension carries the fixed identity of the server and the collaborators
// used to resolve it. It holds no mutable state.
type Extension struct {
	serverID    string
	packageName string

	host     host.Host
	resolver *entrypoint.Resolver
	logger   *slog.Logger

	resolverOpts []entrypoint.Option
}

// Option configures an Extension.
type Option func(*Extension)

// WithLogger sets the logger. Without it, the logger carried by the
// context of each call is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithEnv replaces the environment used for the entrypoint search.
func WithEnv(env entrypoint.Env) Option {
	return func(e *Extension) {
		e.resolverOpts = append(e.resolverOpts, entrypoint.WithEnv(env))
	}
}

// WithFileChecker replaces the regular file test used for the entrypoint
// search.
func WithFileChecker(fc entrypoint.FileChecker) Option {
	return func(e *Extension) {
		e.resolverOpts = append(e.resolverOpts, entrypoint.WithFileChecker(fc))
	}
}

// New returns an Extension backed by h.
func New(h host.Host, opts ...Option) *Extension {
	e := &Extension{
		serverID:    mcp.ServerID,
		packageName: mcp.PackageName,
		host:        h,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = entrypoint.NewResolver(e.resolverOpts...)
	return e
}

// ServerID returns the one supported context server id.
func (e *Extension) ServerID() string { return e.serverID }

// PackageName returns the npm package providing the server.
func (e *Extension) PackageName() string { return e.packageName }

// Resolver returns the entrypoint resolver, for diagnostics.
func (e *Extension) Resolver() *entrypoint.Resolver { return e.resolver }

func (e *Extension) loggerFor(ctx context.Context) *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.FromContext(ctx)
}

// ContextServerCommand resolves the command that launches serverID for
// project. Host failures are returned unchanged.
func (e *Extension) ContextServerCommand(ctx context.Context, serverID string, project host.Project) (*mcp.Command, error) {
	start := time.Now()
	logger := logging.WithOperation(e.loggerFor(ctx), "context_server_command").
		With(logging.ServerID(serverID))
	ctx = logging.NewContext(ctx, logger)

	fail := func(stage string, err error) (*mcp.Command, error) {
		logger.Debug("resolution failed", logging.Stage(stage), logging.Err(err))
		return nil, err
	}

	if err := e.identify(serverID); err != nil {
		return fail(logging.StageIdentify, err)
	}

	res, err := npm.EnsureInstalled(ctx, e.host, e.packageName)
	if err != nil {
		return fail(logging.StageInstall, err)
	}
	logger.Debug("package ready",
		logging.Package(res.Package), logging.Version(res.Latest),
		slog.String("action", string(res.Action)))

	s, err := settings.Load(ctx, e.host, serverID, project)
	if err != nil {
		return fail(logging.StageSettings, err)
	}

	token, err := credential.RequiredAccessToken(s)
	if err != nil {
		return fail(logging.StageCredential, err)
	}

	entry, err := e.resolver.Resolve(ctx)
	if err != nil {
		return fail(logging.StageEntrypoint, err)
	}

	node, err := e.host.NodeBinaryPath(ctx)
	if err != nil {
		return fail(logging.StageRuntime, err)
	}

	cmd := mcp.BuildCommand(node, entry, token)
	red := cmd.Redacted()
	logger.Info("resolved context server command",
		logging.Stage(logging.StageBuild),
		slog.String("command", red.Command),
		slog.Any("args", red.Args),
		slog.Duration(logging.KeyDuration, time.Since(start)))
	return cmd, nil
}

// ContextServerConfiguration returns the configuration surface for
// serverID, or nil when the id is not supported.
func (e *Extension) ContextServerConfiguration(_ context.Context, serverID string, _ host.Project) (*configuration.Configuration, error) {
	cfg, ok := configuration.For(serverID)
	if !ok {
		return nil, nil
	}
	return cfg, nil
}

func (e *Extension) identify(serverID string) error {
	if serverID == e.serverID {
		return nil
	}
	return errors.Mark(
		errors.Newf("Unsupported context server id `%s` for this extension", serverID),
		errors.ErrUnsupportedServer,
	)
}
