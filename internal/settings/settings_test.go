package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
)

type stubSource struct {
	value any
	ok    bool
	err   error

	gotID      string
	gotProject host.Project
}

func (s *stubSource) ContextServerSettings(_ context.Context, id string, p host.Project) (any, bool, error) {
	s.gotID = id
	s.gotProject = p
	return s.value, s.ok, s.err
}

func TestDefault(t *testing.T) {
	assert.Empty(t, Default().SentryAccessToken)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    string
		wantErr bool
	}{
		{name: "map with token", raw: map[string]any{"sentry_access_token": "tok"}, want: "tok"},
		{name: "token kept untrimmed", raw: map[string]any{"sentry_access_token": " tok "}, want: " tok "},
		{name: "missing field defaults", raw: map[string]any{}, want: ""},
		{name: "unknown keys ignored", raw: map[string]any{"sentry_access_token": "t", "host": "sentry.io"}, want: "t"},
		{name: "string map", raw: map[string]string{"sentry_access_token": "t"}, want: "t"},
		{name: "json raw message", raw: json.RawMessage(`{"sentry_access_token":"abc"}`), want: "abc"},
		{name: "json bytes empty object", raw: []byte(`{}`), want: ""},
		{name: "number token rejected", raw: map[string]any{"sentry_access_token": 42}, wantErr: true},
		{name: "list token rejected", raw: map[string]any{"sentry_access_token": []any{"a"}}, wantErr: true},
		{name: "array payload rejected", raw: json.RawMessage(`["a"]`), wantErr: true},
		{name: "scalar payload rejected", raw: 7, wantErr: true},
		{name: "malformed json rejected", raw: []byte(`{"sentry_access_token":`), wantErr: true},
		{name: "null rejected", raw: nil, wantErr: true},
		{name: "upper-case key is unknown", raw: map[string]any{"SENTRY_ACCESS_TOKEN": "tok"}, want: ""},
		{name: "mixed-case key is unknown", raw: map[string]any{"Sentry_Access_Token": "tok"}, want: ""},
		{name: "mis-cased json key is unknown", raw: []byte(`{"Sentry_Access_Token":"tok"}`), want: ""},
		{name: "null token rejected", raw: map[string]any{"sentry_access_token": nil}, wantErr: true},
		{name: "null token in json rejected", raw: []byte(`{"sentry_access_token": null}`), wantErr: true},
		{name: "null token in yaml map rejected", raw: map[any]any{"sentry_access_token": nil}, wantErr: true},
		{name: "go string is not json text", raw: `{"sentry_access_token":"x"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SentryAccessToken)
		})
	}
}

func TestLoad_NoStoredValue(t *testing.T) {
	src := &stubSource{ok: false}
	project := host.Project{Root: "/src/app"}

	got, err := Load(context.Background(), src, "sentry-mcp", project)

	require.NoError(t, err)
	assert.Equal(t, Default(), got)
	assert.Equal(t, "sentry-mcp", src.gotID)
	assert.Equal(t, project, src.gotProject)
}

func TestLoad_StoredValue(t *testing.T) {
	src := &stubSource{ok: true, value: map[string]any{"sentry_access_token": "sntryu_abc"}}

	got, err := Load(context.Background(), src, "sentry-mcp", host.Project{})

	require.NoError(t, err)
	assert.Equal(t, "sntryu_abc", got.SentryAccessToken)
}

func TestLoad_DecodeFailure(t *testing.T) {
	src := &stubSource{ok: true, value: []any{"not", "an", "object"}}

	_, err := Load(context.Background(), src, "sentry-mcp", host.Project{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSettings))
	assert.Contains(t, err.Error(), "Invalid settings for `sentry-mcp`: ")
	assert.Contains(t, err.Error(), "expected a settings object")
}

func TestLoad_NullToken(t *testing.T) {
	src := &stubSource{ok: true, value: json.RawMessage(`{"sentry_access_token": null}`)}

	_, err := Load(context.Background(), src, "sentry-mcp", host.Project{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSettings))
	assert.Equal(t, "Invalid settings for `sentry-mcp`: invalid type: null, expected a string", err.Error())
}

func TestLoad_StringPayload(t *testing.T) {
	src := &stubSource{ok: true, value: `{"sentry_access_token":"x"}`}

	_, err := Load(context.Background(), src, "sentry-mcp", host.Project{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidSettings))
	assert.Contains(t, err.Error(), "invalid type: string, expected a settings object")
}

func TestLoad_SourceFailurePropagates(t *testing.T) {
	boom := errors.New("settings store unavailable")
	src := &stubSource{err: boom}

	_, err := Load(context.Background(), src, "sentry-mcp", host.Project{})

	require.Error(t, err)
	assert.Equal(t, "settings store unavailable", err.Error())
	assert.False(t, errors.Is(err, errors.ErrInvalidSettings))
}
