// Package settings decodes the context server settings value handed over by
// the host into a typed record.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host"
)

const tokenKey = "sentry_access_token"

// Settings is the typed form of the sentry-mcp context server settings.
type Settings struct {
	SentryAccessToken string `mapstructure:"sentry_access_token" json:"sentry_access_token" yaml:"sentry_access_token"`
}

// Default returns the settings used when the host has no value stored.
func Default() Settings {
	return Settings{SentryAccessToken: ""}
}

// Source supplies the opaque settings value scoped to a server id and project.
// ok is false when nothing is stored.
type Source interface {
	ContextServerSettings(ctx context.Context, serverID string, project host.Project) (value any, ok bool, err error)
}

// Decode converts an opaque settings value into Settings.
//
// A missing sentry_access_token keeps its empty default and unknown keys are
// ignored. Keys match exactly, so a differently cased key is unknown.
// Anything that is not an object, or a token that is not a string (null
// included), is rejected. JSON text ([]byte, json.RawMessage) is parsed first.
func Decode(raw any) (Settings, error) {
	s := Default()

	value, err := normalize(raw)
	if err != nil {
		return s, err
	}
	if nullToken(value) {
		return s, errors.New("invalid type: null, expected a string")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
		ErrorUnused:      false,
		ZeroFields:       false,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return s, err
	}

	if err := dec.Decode(value); err != nil {
		return Default(), err
	}
	return s, nil
}

// normalize turns raw into a map-shaped value mapstructure can decode.
func normalize(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, errors.New("invalid type: null, expected a settings object")
	case json.RawMessage:
		return unmarshalJSON(v)
	case []byte:
		return unmarshalJSON(v)
	case map[string]any, map[any]any, map[string]string:
		return v, nil
	default:
		return nil, errors.Newf("invalid type: %T, expected a settings object", raw)
	}
}

// nullToken reports whether value holds sentry_access_token with a null value.
// An absent key is not null.
func nullToken(value any) bool {
	switch m := value.(type) {
	case map[string]any:
		v, ok := m[tokenKey]
		return ok && v == nil
	case map[any]any:
		v, ok := m[tokenKey]
		return ok && v == nil
	}
	return false
}

func unmarshalJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if _, ok := v.(map[string]any); !ok {
		return nil, errors.Newf("invalid type: %s, expected a settings object", jsonKind(v))
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Load asks src for the settings of serverID in project and decodes them.
// No stored value yields Default(). A decode failure is marked with
// errors.ErrInvalidSettings and names the server id.
func Load(ctx context.Context, src Source, serverID string, project host.Project) (Settings, error) {
	raw, ok, err := src.ContextServerSettings(ctx, serverID, project)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Default(), nil
	}

	s, err := Decode(raw)
	if err != nil {
		return Settings{}, errors.Mark(
			errors.Newf("Invalid settings for `%s`: %s", serverID, err.Error()),
			errors.ErrInvalidSettings,
		)
	}
	return s, nil
}
