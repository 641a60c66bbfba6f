// Package credential enforces the presence of the Sentry access token.
package credential

import (
	"strings"

	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/settings"
)

// MissingTokenMessage is shown to the user when no usable token is configured.
const MissingTokenMessage = "Missing required setting: sentry_access_token. " +
	"Open Configure for Sentry MCP Server and set `sentry_access_token`."

// RequiredAccessToken returns the trimmed access token from s. A token that is
// empty after trimming fails with an error marked errors.ErrMissingAccessToken.
//
// This is the only place token presence is checked.
func RequiredAccessToken(s settings.Settings) (string, error) {
	token := strings.TrimSpace(s.SentryAccessToken)
	if token == "" {
		return "", errors.Mark(errors.New(MissingTokenMessage), errors.ErrMissingAccessToken)
	}
	return token, nil
}
