package mcp

import (
	"maps"
	"slices"

	"github.com/thoreinstein/sentry-mcp/internal/redact"
)

// AccessTokenFlag is prepended to the token in the launch arguments.
const AccessTokenFlag = "--access-token="

// Command is the launch descriptor returned to the host.
type Command struct {
	// Command is the path of the JavaScript runtime.
	Command string `json:"command" yaml:"command" toml:"command"`

	// Args are the entrypoint followed by the token flag.
	Args []string `json:"args" yaml:"args" toml:"args"`

	// Env is always empty; the token travels in Args.
	Env map[string]string `json:"env" yaml:"env" toml:"env"`
}

// BuildCommand assembles the descriptor. The token is embedded verbatim with
// no quoting or escaping.
func BuildCommand(node, entrypoint, token string) *Command {
	return &Command{
		Command: node,
		Args:    []string{entrypoint, AccessTokenFlag + token},
		Env:     map[string]string{},
	}
}

// Redacted returns a copy whose secret arguments and environment values are
// masked.
func (c *Command) Redacted() *Command {
	if c == nil {
		return nil
	}
	env := redact.Map(c.Env)
	if env == nil {
		env = map[string]string{}
	}
	return &Command{
		Command: c.Command,
		Args:    redact.Args(c.Args),
		Env:     env,
	}
}

// Clone returns a deep copy.
func (c *Command) Clone() *Command {
	if c == nil {
		return nil
	}
	env := maps.Clone(c.Env)
	if env == nil {
		env = map[string]string{}
	}
	return &Command{Command: c.Command, Args: slices.Clone(c.Args), Env: env}
}

// Argv returns the full argument vector, runtime first.
func (c *Command) Argv() []string {
	return append([]string{c.Command}, c.Args...)
}

// Identity of the one context server this module launches.
const (
	// ServerID is the context server identifier the host requests.
	ServerID = "sentry-mcp"

	// PackageName is the npm package providing the server.
	PackageName = "@sentry/mcp-server"
)
