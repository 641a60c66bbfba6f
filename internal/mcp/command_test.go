package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	cmd := BuildCommand("/usr/bin/node", "/w/node_modules/@sentry/mcp-server/dist/index.js", "abc")

	assert.Equal(t, "/usr/bin/node", cmd.Command)
	assert.Equal(t, []string{
		"/w/node_modules/@sentry/mcp-server/dist/index.js",
		"--access-token=abc",
	}, cmd.Args)
	assert.NotNil(t, cmd.Env)
	assert.Empty(t, cmd.Env)
}

func TestBuildCommand_NoQuoting(t *testing.T) {
	cmd := BuildCommand("node", "/p a/index.js", `t"o k`)
	assert.Equal(t, `--access-token=t"o k`, cmd.Args[1])
	assert.Equal(t, "/p a/index.js", cmd.Args[0])
}

func TestCommand_JSONEnvIsObject(t *testing.T) {
	data, err := json.Marshal(BuildCommand("node", "e.js", "t"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"node","args":["e.js","--access-token=t"],"env":{}}`, string(data))
}

func TestCommand_Redacted(t *testing.T) {
	cmd := BuildCommand("node", "e.js", "sntrys_abcdef1234")
	red := cmd.Redacted()

	assert.Equal(t, []string{"e.js", "--access-token=****1234"}, red.Args)
	assert.Equal(t, "--access-token=sntrys_abcdef1234", cmd.Args[1], "original must be untouched")
	assert.NotNil(t, red.Env)

	short := BuildCommand("node", "e.js", "abc").Redacted()
	assert.Equal(t, "--access-token=********", short.Args[1])

	var nilCmd *Command
	assert.Nil(t, nilCmd.Redacted())
}

func TestCommand_CloneIsDeep(t *testing.T) {
	cmd := BuildCommand("node", "e.js", "t")
	c := cmd.Clone()
	c.Args[0] = "other.js"
	c.Env["X"] = "1"

	assert.Equal(t, "e.js", cmd.Args[0])
	assert.Empty(t, cmd.Env)
}

func TestCommand_Argv(t *testing.T) {
	cmd := BuildCommand("node", "e.js", "t")
	assert.Equal(t, []string{"node", "e.js", "--access-token=t"}, cmd.Argv())
}
