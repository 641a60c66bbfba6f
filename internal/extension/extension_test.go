package extension

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/host/mocks"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

const (
	pkg  = "@sentry/mcp-server"
	node = "/usr/local/bin/node"
)

var project = host.Project{Root: "/projects/app"}

type fakeEnv struct {
	cwd  string
	vars map[string]string
}

func (e fakeEnv) Getwd() (string, error) { return e.cwd, nil }

func (e fakeEnv) LookupEnv(k string) (string, bool) {
	v, ok := e.vars[k]
	return v, ok
}

// fileSet is a FileChecker over a fixed set of paths that records lookups.
type fileSet struct {
	files   map[string]bool
	checked []string
}

func (f *fileSet) check(p string) bool {
	f.checked = append(f.checked, p)
	return f.files[p]
}

func entryUnder(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(entrypoint.RelativePath))
}

func newTestExtension(t *testing.T, h host.Host, env fakeEnv, files *fileSet) *Extension {
	t.Helper()
	return New(h,
		WithLogger(logging.ForTest(t)),
		WithEnv(env),
		WithFileChecker(files.check),
	)
}

func expectCurrentPackage(h *mocks.MockHost) {
	h.EXPECT().LatestVersion(mock.Anything, pkg).Return("0.20.0", nil).Once()
	h.EXPECT().InstalledVersion(mock.Anything, pkg).Return("0.20.0", true, nil).Once()
}

func TestContextServerCommand_HappyPath(t *testing.T) {
	h := mocks.NewMockHost(t)
	expectCurrentPackage(h)
	h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
		Return(map[string]any{"sentry_access_token": "  abc  "}, true, nil).Once()
	h.EXPECT().NodeBinaryPath(mock.Anything).Return(node, nil).Once()

	env := fakeEnv{cwd: "/work"}
	files := &fileSet{files: map[string]bool{entryUnder("/work"): true}}
	ext := newTestExtension(t, h, env, files)

	cmd, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
	require.NoError(t, err)
	assert.Equal(t, node, cmd.Command)
	assert.Equal(t, []string{entryUnder("/work"), "--access-token=abc"}, cmd.Args)
	assert.NotNil(t, cmd.Env)
	assert.Empty(t, cmd.Env)
	h.AssertNotCalled(t, "Install", mock.Anything, mock.Anything, mock.Anything)
}

func TestContextServerCommand_InstallsWhenOutdated(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		present   bool
	}{
		{name: "absent"},
		{name: "older", installed: "0.19.0", present: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mocks.NewMockHost(t)
			h.EXPECT().LatestVersion(mock.Anything, pkg).Return("0.20.0", nil).Once()
			h.EXPECT().InstalledVersion(mock.Anything, pkg).Return(tt.installed, tt.present, nil).Once()
			h.EXPECT().Install(mock.Anything, pkg, "0.20.0").Return(nil).Once()
			h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
				Return(map[string]any{"sentry_access_token": "tok"}, true, nil).Once()
			h.EXPECT().NodeBinaryPath(mock.Anything).Return(node, nil).Once()

			files := &fileSet{files: map[string]bool{entryUnder("/w"): true}}
			ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, files)

			_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
			require.NoError(t, err)
		})
	}
}

func TestContextServerCommand_UnsupportedIDTouchesNothing(t *testing.T) {
	for _, id := range []string{"github-mcp", "", "SENTRY-MCP"} {
		t.Run(id, func(t *testing.T) {
			// No expectations: any host call fails the test.
			h := mocks.NewMockHost(t)
			files := &fileSet{}
			ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, files)

			cmd, err := ext.ContextServerCommand(context.Background(), id, project)
			require.Error(t, err)
			assert.Nil(t, cmd)
			assert.True(t, errors.Is(err, errors.ErrUnsupportedServer))
			assert.Equal(t, "Unsupported context server id `"+id+"` for this extension", err.Error())
			assert.Empty(t, files.checked)
		})
	}
}

func TestContextServerCommand_MissingTokenBeforeEntrypoint(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{name: "nothing stored"},
		{name: "empty token", value: map[string]any{"sentry_access_token": ""}, ok: true},
		{name: "whitespace token", value: map[string]any{"sentry_access_token": " \t\n"}, ok: true},
		{name: "field missing", value: map[string]any{}, ok: true},
		{name: "mis-cased key", value: map[string]any{"SENTRY_ACCESS_TOKEN": "tok"}, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mocks.NewMockHost(t)
			expectCurrentPackage(h)
			h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
				Return(tt.value, tt.ok, nil).Once()

			files := &fileSet{files: map[string]bool{entryUnder("/w"): true}}
			ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, files)

			_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMissingAccessToken))
			assert.Equal(t,
				"Missing required setting: sentry_access_token. Open Configure for Sentry MCP Server and set `sentry_access_token`.",
				err.Error())
			assert.Empty(t, files.checked, "entrypoint search must not run")
			h.AssertNotCalled(t, "NodeBinaryPath", mock.Anything)
		})
	}
}

func TestContextServerCommand_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		message string
	}{
		{
			name:  "number token",
			value: map[string]any{"sentry_access_token": 12},
		},
		{
			name:    "null token",
			value:   map[string]any{"sentry_access_token": nil},
			message: "Invalid settings for `sentry-mcp`: invalid type: null, expected a string",
		},
		{
			name:  "string payload",
			value: `{"sentry_access_token":"tok"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mocks.NewMockHost(t)
			expectCurrentPackage(h)
			h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
				Return(tt.value, true, nil).Once()

			files := &fileSet{}
			ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, files)

			_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidSettings))
			assert.True(t, strings.HasPrefix(err.Error(), "Invalid settings for `sentry-mcp`: "), err.Error())
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
			assert.Empty(t, files.checked)
		})
	}
}

func TestContextServerCommand_EntrypointNotFound(t *testing.T) {
	h := mocks.NewMockHost(t)
	expectCurrentPackage(h)
	h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
		Return(map[string]any{"sentry_access_token": "tok"}, true, nil).Once()

	env := fakeEnv{cwd: "/w", vars: map[string]string{"HOME": "/home/u", "ZED_WORKDIR": "/z"}}
	files := &fileSet{}
	ext := newTestExtension(t, h, env, files)

	_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEntrypointNotFound))
	assert.Equal(t, "Could not locate @sentry/mcp-server entrypoint in Zed extension work directory.", err.Error())
	assert.Len(t, files.checked, 4)
	h.AssertNotCalled(t, "NodeBinaryPath", mock.Anything)
}

func TestContextServerCommand_CwdBeatsWorkDirEnv(t *testing.T) {
	h := mocks.NewMockHost(t)
	expectCurrentPackage(h)
	h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
		Return(map[string]any{"sentry_access_token": "tok"}, true, nil).Once()
	h.EXPECT().NodeBinaryPath(mock.Anything).Return(node, nil).Once()

	env := fakeEnv{cwd: "/x", vars: map[string]string{"ZED_WORKDIR": "/y"}}
	files := &fileSet{files: map[string]bool{
		entryUnder("/x"): true,
		entryUnder("/y"): true,
	}}
	ext := newTestExtension(t, h, env, files)

	cmd, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
	require.NoError(t, err)
	assert.Equal(t, entryUnder("/x"), cmd.Args[0])
}

func TestContextServerCommand_HostErrorsPropagate(t *testing.T) {
	boom := errors.New("host failure")

	t.Run("latest version", func(t *testing.T) {
		h := mocks.NewMockHost(t)
		h.EXPECT().LatestVersion(mock.Anything, pkg).Return("", boom).Once()
		ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, &fileSet{})

		_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
		assert.Same(t, boom, err)
		h.AssertNotCalled(t, "InstalledVersion", mock.Anything, mock.Anything)
	})

	t.Run("install", func(t *testing.T) {
		h := mocks.NewMockHost(t)
		h.EXPECT().LatestVersion(mock.Anything, pkg).Return("1.0.0", nil).Once()
		h.EXPECT().InstalledVersion(mock.Anything, pkg).Return("", false, nil).Once()
		h.EXPECT().Install(mock.Anything, pkg, "1.0.0").Return(boom).Once()
		ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, &fileSet{})

		_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
		assert.Same(t, boom, err)
		h.AssertNotCalled(t, "ContextServerSettings", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("settings", func(t *testing.T) {
		h := mocks.NewMockHost(t)
		expectCurrentPackage(h)
		h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).Return(nil, false, boom).Once()
		ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, &fileSet{})

		_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
		assert.Same(t, boom, err)
	})

	t.Run("node binary", func(t *testing.T) {
		h := mocks.NewMockHost(t)
		expectCurrentPackage(h)
		h.EXPECT().ContextServerSettings(mock.Anything, "sentry-mcp", project).
			Return(map[string]any{"sentry_access_token": "tok"}, true, nil).Once()
		h.EXPECT().NodeBinaryPath(mock.Anything).Return("", boom).Once()
		files := &fileSet{files: map[string]bool{entryUnder("/w"): true}}
		ext := newTestExtension(t, h, fakeEnv{cwd: "/w"}, files)

		_, err := ext.ContextServerCommand(context.Background(), "sentry-mcp", project)
		assert.Same(t, boom, err)
	})
}

func TestContextServerCommand_LoggerFromContext(t *testing.T) {
	h := mocks.NewMockHost(t)
	ext := New(h, WithEnv(fakeEnv{cwd: "/w"}), WithFileChecker(func(string) bool { return false }))

	ctx := logging.NewContext(context.Background(), logging.ForTest(t))
	_, err := ext.ContextServerCommand(ctx, "other", project)
	require.Error(t, err)
}

func TestContextServerConfiguration(t *testing.T) {
	h := mocks.NewMockHost(t)
	ext := New(h)

	cfg, err := ext.ContextServerConfiguration(context.Background(), "sentry-mcp", project)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.InstallationInstructions)
	assert.Contains(t, cfg.SettingsSchema, "sentry_access_token")
	assert.Contains(t, cfg.DefaultSettings, `"sentry_access_token": ""`)

	cfg, err = ext.ContextServerConfiguration(context.Background(), "not-sentry", project)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestIdentity(t *testing.T) {
	ext := New(mocks.NewMockHost(t))
	assert.Equal(t, "sentry-mcp", ext.ServerID())
	assert.Equal(t, pkg, ext.PackageName())
	assert.NotNil(t, ext.Resolver())
}
