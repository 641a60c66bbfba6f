package npm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	out   []byte
	err   error
	calls []call
}

func (f *fakeRunner) run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	return f.out, f.err
}

func TestCLI_LatestVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{name: "json string", out: "\"0.20.0\"\n", want: "0.20.0"},
		{name: "json array", out: `["0.19.0","0.20.0"]`, want: "0.20.0"},
		{name: "plain text", out: "0.20.0\n", want: "0.20.0"},
		{name: "empty", out: "  ", wantErr: true},
		{name: "object", out: `{"error":"E404"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRunner{out: []byte(tt.out)}
			c := NewCLI("", t.TempDir(), WithRunner(f.run))

			got, err := c.LatestVersion(context.Background(), pkg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, f.calls, 1)
			assert.Equal(t, "npm", f.calls[0].name)
			assert.Equal(t, []string{"view", pkg, "version", "--json"}, f.calls[0].args)
		})
	}
}

func TestCLI_LatestVersion_RunnerError(t *testing.T) {
	boom := errors.New("exit status 1")
	f := &fakeRunner{err: boom}
	c := NewCLI("/usr/bin/npm", t.TempDir(), WithRunner(f.run))

	_, err := c.LatestVersion(context.Background(), pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), pkg)
}

func writeManifest(t *testing.T, workDir, body string) {
	t.Helper()
	dir := filepath.Join(workDir, "node_modules", "@sentry", "mcp-server")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(body), 0o644))
}

func TestCLI_InstalledVersion(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		c := NewCLI("", t.TempDir())
		v, ok, err := c.InstalledVersion(context.Background(), pkg)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("present", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"name":"@sentry/mcp-server","version":"0.20.0"}`)
		c := NewCLI("", dir)

		v, ok, err := c.InstalledVersion(context.Background(), pkg)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "0.20.0", v)
	})

	t.Run("no version field", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{"name":"@sentry/mcp-server"}`)
		c := NewCLI("", dir)

		_, ok, err := c.InstalledVersion(context.Background(), pkg)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeManifest(t, dir, `{`)
		c := NewCLI("", dir)

		_, _, err := c.InstalledVersion(context.Background(), pkg)
		require.Error(t, err)
	})
}

func TestCLI_Install(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "work")
	f := &fakeRunner{}
	c := NewCLI("npm", workDir, WithRunner(f.run))

	require.NoError(t, c.Install(context.Background(), pkg, "0.20.0"))

	info, err := os.Stat(workDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.Len(t, f.calls, 1)
	assert.Equal(t, workDir, f.calls[0].dir)
	assert.Equal(t,
		[]string{"install", "--prefix", workDir, "--no-audit", "--no-fund", pkg + "@0.20.0"},
		f.calls[0].args)
}

func TestCLI_Install_Error(t *testing.T) {
	f := &fakeRunner{err: errors.New("E404")}
	c := NewCLI("npm", t.TempDir(), WithRunner(f.run))

	err := c.Install(context.Background(), pkg, "9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), pkg+"@9.9.9")
}

func TestCLI_WorkDir(t *testing.T) {
	assert.Equal(t, "/w", NewCLI("", "/w").WorkDir())
}
