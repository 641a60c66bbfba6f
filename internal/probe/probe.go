// Package probe launches a resolved context server command and performs the
// MCP handshake against it, confirming the server actually starts with the
// configured token.
package probe

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
	"github.com/thoreinstein/sentry-mcp/internal/mcp"
)

// DefaultTimeout bounds the whole probe when ctx has no deadline.
const DefaultTimeout = 30 * time.Second

// ProtocolVersion is the MCP protocol version offered during initialize.
const ProtocolVersion = "2024-11-05"

// Client is the subset of the mcp-go client used by Probe.
type Client interface {
	Initialize(ctx context.Context, req mcpproto.InitializeRequest) (*mcpproto.InitializeResult, error)
	ListTools(ctx context.Context, req mcpproto.ListToolsRequest) (*mcpproto.ListToolsResult, error)
	Close() error
}

// Dialer starts command and returns a connected stdio client.
type Dialer func(command string, env []string, args ...string) (Client, error)

// StdioDialer starts the server with the mcp-go stdio transport.
func StdioDialer(command string, env []string, args ...string) (Client, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Report is the outcome of a successful probe.
type Report struct {
	ServerName      string        `json:"server_name"`
	ServerVersion   string        `json:"server_version"`
	ProtocolVersion string        `json:"protocol_version"`
	Tools           []string      `json:"tools"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Prober runs probes.
type Prober struct {
	dial       Dialer
	clientName string
	version    string
}

// Option configures a Prober.
type Option func(*Prober)

// WithDialer replaces the stdio dialer.
func WithDialer(d Dialer) Option {
	return func(p *Prober) {
		p.dial = d
	}
}

// WithClientInfo sets the client name and version sent in initialize.
func WithClientInfo(name, version string) Option {
	return func(p *Prober) {
		p.clientName = name
		p.version = version
	}
}

// New creates a Prober.
func New(opts ...Option) *Prober {
	p := &Prober{dial: StdioDialer, clientName: "sentry-mcp", version: "dev"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe starts cmd, runs initialize and tools/list, and stops the process.
func (p *Prober) Probe(ctx context.Context, cmd *mcp.Command) (*Report, error) {
	if cmd == nil {
		return nil, errors.New("nil command")
	}
	logger := logging.FromContext(ctx)
	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	env := make([]string, 0, len(cmd.Env))
	for k, v := range cmd.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	logger.Debug("starting server", slog.String("command", cmd.Command), slog.Any("args", cmd.Redacted().Args))
	c, err := p.dial(cmd.Command, env, cmd.Args...)
	if err != nil {
		return nil, errors.Wrap(err, "starting server")
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			logger.Debug("closing server", logging.Err(cerr))
		}
	}()

	initRes, err := c.Initialize(ctx, mcpproto.InitializeRequest{
		Params: struct {
			ProtocolVersion string                      `json:"protocolVersion"`
			Capabilities    mcpproto.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcpproto.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: ProtocolVersion,
			ClientInfo: mcpproto.Implementation{
				Name:    p.clientName,
				Version: p.version,
			},
			Capabilities: mcpproto.ClientCapabilities{},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing MCP session")
	}

	report := &Report{
		ServerName:      initRes.ServerInfo.Name,
		ServerVersion:   initRes.ServerInfo.Version,
		ProtocolVersion: initRes.ProtocolVersion,
		Tools:           []string{},
	}

	if initRes.Capabilities.Tools != nil {
		tools, err := c.ListTools(ctx, mcpproto.ListToolsRequest{})
		if err != nil {
			return nil, errors.Wrap(err, "listing tools")
		}
		for _, t := range tools.Tools {
			report.Tools = append(report.Tools, t.Name)
		}
		sort.Strings(report.Tools)
	}

	report.Elapsed = time.Since(start)
	logger.Info("probe complete",
		slog.String("server", report.ServerName),
		slog.Int("tools", len(report.Tools)),
		slog.Duration(logging.KeyDuration, report.Elapsed))
	return report, nil
}
