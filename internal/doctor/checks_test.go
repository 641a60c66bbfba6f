package doctor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/sentry-mcp/internal/entrypoint"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
	"github.com/thoreinstein/sentry-mcp/internal/host/mocks"
)

const (
	serverID = "sentry-mcp"
	pkg      = "@sentry/mcp-server"
)

var project = host.Project{Root: "/p"}

func TestNodeCheck(t *testing.T) {
	ok := NewNodeCheck(func(context.Context) (string, error) { return "/usr/bin/node", nil })
	r := ok.Run(context.Background())
	assert.Equal(t, SeverityPass, r.Status)
	assert.Equal(t, "/usr/bin/node", r.Details["path"])
	assert.Equal(t, "node", r.Name)
	assert.Equal(t, CategoryRuntime, r.Category)

	missing := NewNodeCheck(func(context.Context) (string, error) { return "", errors.New("nope") })
	r = missing.Run(context.Background())
	assert.Equal(t, SeverityError, r.Status)
	assert.NotEmpty(t, r.FixHint)
}

func TestNPMCheck(t *testing.T) {
	c := NewNPMCheck("")
	c.lookPath = func(name string) (string, error) {
		assert.Equal(t, "npm", name)
		return "/usr/bin/npm", nil
	}
	assert.Equal(t, SeverityPass, c.Run(context.Background()).Status)

	c = NewNPMCheck("/opt/npm")
	c.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	r := c.Run(context.Background())
	assert.Equal(t, SeverityError, r.Status)
	assert.Contains(t, r.Message, "/opt/npm")
}

func TestPackageCheck(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		present   bool
		latest    string
		latestErr error
		want      Severity
	}{
		{name: "current", installed: "1.0.0", present: true, latest: "1.0.0", want: SeverityPass},
		{name: "outdated", installed: "0.9.0", present: true, latest: "1.0.0", want: SeverityInfo},
		{name: "absent", latest: "1.0.0", want: SeverityWarning},
		{name: "registry down", installed: "1.0.0", present: true, latestErr: errors.New("ETIMEDOUT"), want: SeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mocks.NewMockHost(t)
			h.EXPECT().InstalledVersion(mock.Anything, pkg).Return(tt.installed, tt.present, nil).Once()
			h.EXPECT().LatestVersion(mock.Anything, pkg).Return(tt.latest, tt.latestErr).Once()

			r := NewPackageCheck(h, pkg).Run(context.Background())
			assert.Equal(t, tt.want, r.Status, r.Message)
		})
	}

	t.Run("installed error", func(t *testing.T) {
		h := mocks.NewMockHost(t)
		h.EXPECT().InstalledVersion(mock.Anything, pkg).Return("", false, errors.New("EACCES")).Once()

		r := NewPackageCheck(h, pkg).Run(context.Background())
		assert.Equal(t, SeverityError, r.Status)
	})
}

func settingsHost(t *testing.T, value any, ok bool, err error) *mocks.MockHost {
	t.Helper()
	h := mocks.NewMockHost(t)
	h.EXPECT().ContextServerSettings(mock.Anything, serverID, project).Return(value, ok, err).Once()
	return h
}

func TestSettingsSchemaCheck(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
		err   error
		want  Severity
	}{
		{name: "valid", value: map[string]any{"sentry_access_token": "x"}, ok: true, want: SeverityPass},
		{name: "nothing stored", want: SeverityWarning},
		{name: "missing field", value: map[string]any{}, ok: true, want: SeverityError},
		{name: "wrong type", value: map[string]any{"sentry_access_token": true}, ok: true, want: SeverityError},
		{name: "store error", err: errors.New("bad yaml"), want: SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := settingsHost(t, tt.value, tt.ok, tt.err)
			r := NewSettingsSchemaCheck(h, serverID, project).Run(context.Background())
			assert.Equal(t, tt.want, r.Status, r.Message)
		})
	}
}

func TestTokenCheck(t *testing.T) {
	t.Run("present and masked", func(t *testing.T) {
		h := settingsHost(t, map[string]any{"sentry_access_token": "sntrys_secretvalue"}, true, nil)
		r := NewTokenCheck(h, serverID, project).Run(context.Background())

		assert.Equal(t, SeverityPass, r.Status)
		assert.Equal(t, "****alue", r.Details["token"])
		assert.NotContains(t, r.Message, "sntrys_")
	})

	t.Run("blank", func(t *testing.T) {
		h := settingsHost(t, map[string]any{"sentry_access_token": "   "}, true, nil)
		r := NewTokenCheck(h, serverID, project).Run(context.Background())

		assert.Equal(t, SeverityError, r.Status)
		assert.True(t, strings.HasPrefix(r.Message, "Missing required setting: sentry_access_token."))
	})

	t.Run("invalid", func(t *testing.T) {
		h := settingsHost(t, map[string]any{"sentry_access_token": 1}, true, nil)
		r := NewTokenCheck(h, serverID, project).Run(context.Background())

		assert.Equal(t, SeverityError, r.Status)
		assert.Contains(t, r.Message, "Invalid settings for `sentry-mcp`")
	})
}

type staticInspector []entrypoint.Candidate

func (s staticInspector) Inspect() []entrypoint.Candidate { return s }

func TestEntrypointCheck(t *testing.T) {
	found := staticInspector{
		{Path: "/a/index.js", Source: entrypoint.SourceCwd},
		{Path: "/b/index.js", Source: "ZED_WORKDIR", Exists: true},
	}
	r := NewEntrypointCheck(found).Run(context.Background())
	require.Equal(t, SeverityPass, r.Status)
	assert.Equal(t, "/b/index.js", r.Details["path"])

	missing := staticInspector{{Path: "/a/index.js", Source: entrypoint.SourceCwd}}
	r = NewEntrypointCheck(missing).Run(context.Background())
	assert.Equal(t, SeverityWarning, r.Status)
	assert.Equal(t, entrypoint.NotFoundMessage, r.Message)
	assert.Equal(t, []string{"/a/index.js"}, r.Details["searched"])
}
